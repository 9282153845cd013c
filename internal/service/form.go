package service

import (
	"github.com/target/admin-panel/internal/core"
	"github.com/target/admin-panel/internal/domain/model"
)

// FormServiceOptions groups dependencies for FormService.
type FormServiceOptions struct {
	Repo core.FormRepository
}

// FormService manages form submissions.
type FormService struct {
	contentService[model.FormSubmission, model.CreateFormRequest, model.UpdateFormRequest]
}

// NewFormService constructs a new FormService.
func NewFormService(opts FormServiceOptions) *FormService {
	if opts.Repo == nil {
		panic("service: FormService requires Repo")
	}
	return &FormService{
		contentService: contentService[model.FormSubmission, model.CreateFormRequest, model.UpdateFormRequest]{
			repo:    opts.Repo,
			replace: replaceForm,
		},
	}
}

func replaceForm(req model.CreateFormRequest) model.UpdateFormRequest {
	status := req.Status
	if status == "" {
		status = model.FormStatusNew
	}
	fields := req.Fields
	if fields == nil {
		fields = []model.FormField{}
	}
	return model.UpdateFormRequest{
		Name:    &req.Name,
		Email:   &req.Email,
		Message: &req.Message,
		Status:  &status,
		Fields:  &fields,
	}
}
