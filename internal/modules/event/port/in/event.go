package in

import (
	"context"
	"io"

	"teamboard/internal/modules/event/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.EventOutput, error)
	Types() []dto.TypeOption
	NewDraft() dto.DraftOutput
	DraftFor(event dto.EventOutput) dto.DraftOutput
	Validate(input dto.SaveInput) dto.FieldErrors
	Create(ctx context.Context, input dto.SaveInput) (dto.EventOutput, error)
	Update(ctx context.Context, id string, input dto.SaveInput) (dto.EventOutput, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, w io.Writer) (int, error)
}
