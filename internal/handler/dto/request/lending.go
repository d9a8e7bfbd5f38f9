package request

import (
	"library-lending/internal/domain/bookrequest"
	"library-lending/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type IssueBookRequest struct {
	BookID uuid.UUID `json:"book_id" binding:"required"`
	// staff only
	UserID *uuid.UUID `json:"user_id,omitempty"`
}

func (r IssueBookRequest) ToCommand() commands.IssueBookRequest {
	return commands.IssueBookRequest{BookID: r.BookID, UserID: r.UserID}
}

type CreateReservationRequest struct {
	BookID *uuid.UUID `json:"book_id,omitempty"`
	LoanID *uuid.UUID `json:"loan_id,omitempty"`
}

func (r CreateReservationRequest) ToCommand() commands.CreateReservationRequest {
	return commands.CreateReservationRequest{BookID: r.BookID, LoanID: r.LoanID}
}

type SubmitBookRequestRequest struct {
	Title    string `json:"title" binding:"required,max=255"`
	Author   string `json:"author" binding:"omitempty,max=255"`
	Edition  string `json:"edition" binding:"omitempty,max=64"`
	Category string `json:"category" binding:"omitempty,max=255"`
}

func (r SubmitBookRequestRequest) ToSubmission() (bookrequest.Submission, error) {
	var s bookrequest.Submission
	if err := copier.Copy(&s, &r); err != nil {
		return bookrequest.Submission{}, err
	}
	return s, nil
}
