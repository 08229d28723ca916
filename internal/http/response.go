package http

import "github.com/tuanvumaihuynh/inventory-service/internal/model"

type messageResponse struct {
	Message string `json:"message"`
}

type pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func newPagination(page model.PageParams, total int) pagination {
	return pagination{
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      total,
		TotalPages: page.TotalPages(total),
	}
}

type userResponse struct {
	Message string     `json:"message"`
	User    model.User `json:"user"`
}

type loginResponse struct {
	Status  string     `json:"status"`
	Message string     `json:"message"`
	User    model.User `json:"user"`
}

type usersResponse struct {
	Message string       `json:"message"`
	Users   []model.User `json:"users"`
}

type productResponse struct {
	Message string        `json:"message"`
	Product model.Product `json:"product"`
}

type productPageResponse struct {
	Message string `json:"message"`
	pagination
	Products []model.Product `json:"products"`
}

type productSearchResponse struct {
	Message  string          `json:"message"`
	Query    string          `json:"query"`
	Count    int             `json:"count"`
	Products []model.Product `json:"products"`
}

type supplierResponse struct {
	Message  string         `json:"message"`
	Supplier model.Supplier `json:"supplier"`
}

type supplierPageResponse struct {
	Message string `json:"message"`
	pagination
	Suppliers []model.Supplier `json:"suppliers"`
}

type supplierSearchResponse struct {
	Message   string           `json:"message"`
	Query     string           `json:"query"`
	Count     int              `json:"count"`
	Suppliers []model.Supplier `json:"suppliers"`
}

type logPageResponse struct {
	Message string `json:"message"`
	pagination
	Logs []model.LogEntry `json:"logs"`
}
