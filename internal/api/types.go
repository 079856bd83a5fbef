package api

type createResourceRequest struct {
	Name string `json:"name" binding:"required"`
}

type resourceResponse struct {
	Name   string   `json:"name"`
	Scopes []string `json:"scopes"`
	Roles  []string `json:"roles"`
}

type createScopeRequest struct {
	Resource string `json:"resource" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

type scopeResponse struct {
	Resource string `json:"resource"`
	Name     string `json:"name"`
}

type createRoleRequest struct {
	Resource string `json:"resource" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

type roleResponse struct {
	Resource string `json:"resource"`
	Name     string `json:"name"`
}

type createScopeAssignmentRequest struct {
	Resource  string `json:"resource" binding:"required"`
	Scope     string `json:"scope" binding:"required"`
	Principal string `json:"principal" binding:"required"`
}

type scopeAssignmentResponse struct {
	Resource  string `json:"resource"`
	Scope     string `json:"scope"`
	Principal string `json:"principal"`
}

type createRoleAssignmentRequest struct {
	Resource  string `json:"resource" binding:"required"`
	Role      string `json:"role" binding:"required"`
	Principal string `json:"principal" binding:"required"`
}

type roleAssignmentResponse struct {
	Resource  string `json:"resource"`
	Role      string `json:"role"`
	Principal string `json:"principal"`
}

type listPrincipalsResponse struct {
	Data []string `json:"data"`
}

type accessResponse struct {
	Principal string   `json:"principal"`
	Resource  string   `json:"resource"`
	Scopes    []string `json:"scopes"`
	Roles     []string `json:"roles"`
}

type deleteResponse struct {
	Success bool `json:"success"`
}
