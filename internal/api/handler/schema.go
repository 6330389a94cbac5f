package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

// Required text fields are not tagged: the service owns those messages.

type loginRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type reportBugRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Steps       string `json:"steps"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high critical"`
}

type transitionRequest struct {
	Status string `json:"status" validate:"required,oneof=reported processing completed"`
}

type listQuery struct {
	Search   string `query:"search"`
	Status   string `query:"status"   validate:"omitempty,oneof=all reported processing completed"`
	Priority string `query:"priority" validate:"omitempty,oneof=all low medium high critical"`
}

// --- Response types ---

type userResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type bugResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Steps       string  `json:"steps"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	ReportedBy  string  `json:"reported_by"`
	ReportedAt  string  `json:"reported_at"`
	VerifiedBy  string  `json:"verified_by,omitempty"`
	VerifiedAt  *string `json:"verified_at,omitempty"`
	CompletedAt *string `json:"completed_at,omitempty"`
}

type reportBugResponse struct {
	Bug            bugResponse `json:"bug"`
	AlreadyExisted bool        `json:"already_existed"`
}

type listBugsResponse struct {
	Items []bugResponse `json:"items"`
	Total int           `json:"total"`
}

type columnResponse struct {
	Status string        `json:"status"`
	Count  int           `json:"count"`
	Bugs   []bugResponse `json:"bugs"`
}

type boardResponse struct {
	Dashboard   string           `json:"dashboard"`
	Filter      string           `json:"filter"`
	Columns     []columnResponse `json:"columns"`
	Total       int              `json:"total"`
	RefreshedAt string           `json:"refreshed_at,omitempty"`
}
