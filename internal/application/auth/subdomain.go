package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	maxSubdomainLength = 63
	subdomainHashLen   = 4
	subdomainAttempts  = 64
)

var fallbackWords = []string{"menu", "carta", "sabor", "gusto", "chef", "resto"}

// subdomainGenerator arma subdominios únicos a partir del nombre del usuario.
type subdomainGenerator struct {
	exists func(ctx context.Context, subdomain string) (bool, error)
	hash   func() string
	pick   func(n int) int
}

func newSubdomainGenerator(exists func(ctx context.Context, subdomain string) (bool, error)) *subdomainGenerator {
	return &subdomainGenerator{exists: exists, hash: randomHash, pick: randomIndex}
}

// Generate slug de "nombre apellido"; si está tomado prueba slug-xxxx y al final palabras de respaldo.
func (g *subdomainGenerator) Generate(ctx context.Context, name, lastName string) (string, error) {
	base := slugify(strings.TrimSpace(name + " " + lastName))
	if base == "" {
		base = g.fallback()
	}
	if len(base) > maxSubdomainLength {
		base = strings.Trim(base[:maxSubdomainLength], "-")
	}

	taken, err := g.exists(ctx, base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}

	prefix := truncateForHash(base)
	for i := 0; i < subdomainAttempts; i++ {
		candidate := prefix + "-" + g.hash()
		if taken, err = g.exists(ctx, candidate); err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		candidate := truncateForHash(g.fallback()) + "-" + g.hash()
		if taken, err = g.exists(ctx, candidate); err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}

func (g *subdomainGenerator) fallback() string {
	return fallbackWords[g.pick(len(fallbackWords))] + "-" + g.hash()
}

// slugify quita tildes (NFD sin marcas), pasa a minúsculas y colapsa lo no alfanumérico en "-".
func slugify(value string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, value)
	if err != nil {
		plain = value
	}
	plain = strings.ToLower(plain)

	var b strings.Builder
	dash := false
	for _, r := range plain {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func truncateForHash(slug string) string {
	limit := maxSubdomainLength - (subdomainHashLen + 1)
	if len(slug) > limit {
		return strings.TrimRight(slug[:limit], "-")
	}
	return slug
}

func randomHash() string {
	buf := make([]byte, subdomainHashLen/2)
	if _, err := rand.Read(buf); err != nil {
		return "0000"
	}
	return hex.EncodeToString(buf)
}

func randomIndex(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}
