package dto

// MessageResponse is the success envelope for trigger endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents a generic error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SummarizeRequest is the payload of the summarize trigger endpoint.
type SummarizeRequest struct {
	BatchSize int `json:"batch_size"`
}

// FetchNewsResponse reports the outcome of an acquisition run.
type FetchNewsResponse struct {
	Message  string `json:"message"`
	Inserted int    `json:"inserted"`
}

// SummarizeResponse reports the outcome of a batcher run.
type SummarizeResponse struct {
	Message   string `json:"message"`
	Processed int    `json:"processed"`
}

// CompanyResponse is the public shape of a company record.
type CompanyResponse struct {
	CompanyName  string `json:"company_name"`
	Symbol       string `json:"symbol"`
	Sector       string `json:"sector"`
	SubIndustry  string `json:"sub_industry"`
	Headquarters string `json:"headquarters"`
	Founded      string `json:"founded"`
	Employees    int    `json:"employees"`
	Description  string `json:"description"`
}
