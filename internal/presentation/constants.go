package presentation

const (
	AuthKey         = "Authorization"
	BearerScheme    = "Bearer"
	KeyToken        = "token"
	FileField       = "arquivo"
	OperationParam  = "operation"
	LimitParam      = "limit"
	ReasonTag       = "X-Reason"
	PageCountHeader = "X-Page-Count"
)
