package request

import (
	"strings"

	"library-lending/internal/domain/book"
	"library-lending/internal/usecase/commands"

	"github.com/jinzhu/copier"
)

// AddBookRequest covers both ways of adding stock: by isbn with a catalog lookup, or
// manually with the descriptive fields. An empty isbn implies manual.
type AddBookRequest struct {
	ISBN        string `json:"isbn" binding:"omitempty,max=32"`
	CopiesDelta int    `json:"copies_delta" binding:"omitempty,min=1,max=10000"`
	Manual      bool   `json:"manual"`
	Copies      *int   `json:"copies,omitempty" binding:"omitempty,min=0,max=10000"`

	Title    string `json:"title" binding:"omitempty,max=255"`
	Author   string `json:"author" binding:"omitempty,max=255"`
	Genre    string `json:"genre" binding:"omitempty,max=255"`
	Language string `json:"language" binding:"omitempty,max=64"`
	Edition  string `json:"edition" binding:"omitempty,max=64"`
	CoverURL string `json:"cover_url" binding:"omitempty,url"`
}

func (r AddBookRequest) IsManual() bool {
	return r.Manual || strings.TrimSpace(r.ISBN) == ""
}

func (r AddBookRequest) Details() book.Details {
	return book.Details{
		Title:    r.Title,
		Author:   r.Author,
		Genre:    r.Genre,
		Language: r.Language,
		Edition:  r.Edition,
		CoverURL: r.CoverURL,
	}
}

func (r AddBookRequest) ToAddOrRestock() commands.AddOrRestockRequest {
	return commands.AddOrRestockRequest{
		ISBN:        r.ISBN,
		CopiesDelta: r.CopiesDelta,
		Manual:      r.Details(),
	}
}

func (r AddBookRequest) ToManualAdd() commands.ManualAddRequest {
	return commands.ManualAddRequest{
		ISBN:    r.ISBN,
		Details: r.Details(),
		Copies:  r.Copies,
	}
}

type UpdateBookRequest struct {
	ISBN     *string `json:"isbn" binding:"omitempty,max=32"`
	Title    *string `json:"title" binding:"omitempty,max=255"`
	Author   *string `json:"author" binding:"omitempty,max=255"`
	Genre    *string `json:"genre" binding:"omitempty,max=255"`
	Language *string `json:"language" binding:"omitempty,max=64"`
	Edition  *string `json:"edition" binding:"omitempty,max=64"`
	CoverURL *string `json:"cover_url" binding:"omitempty,url"`
	Copies   *int    `json:"copies" binding:"omitempty,min=0,max=10000"`
}

func (r UpdateBookRequest) ToChanges() (book.Changes, error) {
	var changes book.Changes
	if err := copier.CopyWithOption(&changes, &r, copier.Option{CaseSensitive: true}); err != nil {
		return book.Changes{}, err
	}
	return changes, nil
}
