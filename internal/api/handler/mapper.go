package handler

import (
	"github.com/leadvault/crm-api/internal/core/domain"
	"github.com/leadvault/crm-api/internal/core/ports"
)

const dateLayout = "2006-01-02"

// --- Service result → HTTP response ---

func toSummaryResponse(u ports.UserSummary) userSummaryResponse {
	return userSummaryResponse{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		TenantID: u.TenantID,
		Role:     u.Role,
	}
}

func toAuthResponse(r *ports.AuthResult) authResponse {
	return authResponse{
		Token:     r.Token,
		ExpiresAt: r.ExpiresAt.UTC(),
		User:      toSummaryResponse(r.User),
	}
}

func toProfileResponse(p *ports.Profile) profileResponse {
	return profileResponse{
		userSummaryResponse: toSummaryResponse(p.UserSummary),
		Tenant:              p.TenantName,
	}
}

func toUserResponse(u *domain.User) userResponse {
	resp := userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt.UTC(),
		UpdatedAt: u.UpdatedAt.UTC(),
	}
	if u.Role != nil {
		resp.Role = &roleResponse{ID: u.Role.ID, Name: u.Role.Name, Description: u.Role.Description}
	}
	return resp
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

func toImportResponse(imp *domain.Import) importResponse {
	resp := importResponse{
		ID:           imp.ID,
		TenantID:     imp.TenantID,
		UserID:       imp.UserID,
		FileName:     imp.FileName,
		FilePath:     imp.FilePath,
		Status:       string(imp.Status),
		TotalRecords: imp.TotalRecords,
		ValidRecords: imp.ValidRecords,
		CreatedAt:    imp.CreatedAt.UTC(),
		UpdatedAt:    imp.UpdatedAt.UTC(),
	}
	if imp.User != nil {
		resp.User = &importUserResponse{ID: imp.User.ID, Email: imp.User.Email, Name: imp.User.Name}
	}
	for _, e := range imp.Errors {
		resp.Errors = append(resp.Errors, importErrorResponse{
			ID:        e.ID,
			RowNumber: e.RowNumber,
			Field:     e.Field,
			Message:   e.Message,
			CreatedAt: e.CreatedAt.UTC(),
		})
	}
	return resp
}

func toImportResponses(imports []*domain.Import) []importResponse {
	out := make([]importResponse, 0, len(imports))
	for _, imp := range imports {
		out = append(out, toImportResponse(imp))
	}
	return out
}

func toLeadResponse(l *domain.Lead) leadResponse {
	resp := leadResponse{
		ID:        l.ID,
		TenantID:  l.TenantID,
		ImportID:  l.ImportID,
		Phone:     l.Phone,
		Email:     l.Email,
		FirstName: l.FirstName,
		LastName:  l.LastName,
		FICOScore: l.FICOScore,
		City:      l.City,
		State:     l.State,
		ExtraData: l.ExtraData,
		CreatedAt: l.CreatedAt.UTC(),
	}
	if l.DOB != nil {
		dob := l.DOB.UTC().Format(dateLayout)
		resp.DOB = &dob
	}
	return resp
}

func toListLeadsResponse(r *ports.ListLeadsResult) listLeadsResponse {
	leads := make([]leadResponse, 0, len(r.Items))
	for _, l := range r.Items {
		leads = append(leads, toLeadResponse(l))
	}
	return listLeadsResponse{
		Leads:      leads,
		Pagination: paginationResponse{Total: r.Total, Page: r.Page, Limit: r.Limit},
	}
}

// --- Request → Service input ---

func toUpdateImportInput(req updateImportRequest) ports.UpdateImportInput {
	return ports.UpdateImportInput{
		FileName:     req.FileName,
		FilePath:     req.FilePath,
		Status:       req.Status,
		TotalRecords: req.TotalRecords,
		ValidRecords: req.ValidRecords,
	}
}

func toCreateLeadInput(req createLeadRequest) ports.CreateLeadInput {
	return ports.CreateLeadInput{
		ImportID:  req.ImportID,
		Phone:     req.Phone,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		DOB:       req.DOB,
		FICOScore: req.FICOScore,
		City:      req.City,
		State:     req.State,
		ExtraData: req.ExtraData,
	}
}
