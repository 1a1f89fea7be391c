package dto

// ImportRowError fila del CSV que no se pudo importar. Row cuenta el encabezado como fila 1.
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportSummary resultado de una importación masiva.
type ImportSummary struct {
	CreatedCategories int              `json:"createdCategories"`
	ReusedCategories  int              `json:"reusedCategories"`
	CreatedItems      int              `json:"createdItems"`
	Errors            []ImportRowError `json:"errors"`
}

// RebalanceSummary resultado del rebalanceo de mantenimiento de un menú.
type RebalanceSummary struct {
	MenuID     int64 `json:"menuId"`
	Categories int   `json:"categories"`
	ItemGroups int   `json:"itemGroups"`
}
