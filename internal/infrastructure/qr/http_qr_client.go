package qr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/Menu-api/internal/application/catalog"
)

var _ catalog.QRGenerator = (*HTTPClient)(nil)

// maxQRBody tope de lectura de la respuesta del proveedor.
const maxQRBody = 5 << 20

// HTTPClient adaptador del proveedor de QR: POST JSON {data, format, size} y devuelve la imagen
// tal cual (o el JSON, si el proveedor responde así).
type HTTPClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewHTTPClient construye el adaptador. timeout <= 0 usa 10 s.
func NewHTTPClient(endpoint string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type qrRequest struct {
	Data   string `json:"data"`
	Format string `json:"format"`
	Size   int    `json:"size"`
}

// Generate pide el QR. Errores del proveedor salen como *catalog.QRProviderError.
func (c *HTTPClient) Generate(ctx context.Context, data, format string, size int) (*catalog.QRImage, error) {
	body, err := json.Marshal(qrRequest{Data: data, Format: format, Size: size})
	if err != nil {
		return nil, fmt.Errorf("QR: serializar request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("QR: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &catalog.QRProviderError{Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxQRBody))
	if err != nil {
		return nil, &catalog.QRProviderError{Message: "leer respuesta: " + err.Error()}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &catalog.QRProviderError{StatusCode: resp.StatusCode, Message: snippet(raw)}
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if strings.Contains(contentType, "application/json") {
		if !json.Valid(raw) {
			return nil, &catalog.QRProviderError{StatusCode: http.StatusBadGateway, Message: "respuesta JSON inválida"}
		}
		return &catalog.QRImage{ContentType: contentType, Body: raw, IsJSON: true}, nil
	}
	return &catalog.QRImage{ContentType: contentType, Body: raw}, nil
}

func snippet(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > 200 {
		s = s[:200]
	}
	if s == "" {
		return "sin detalle"
	}
	return s
}
