package classroom

import "github.com/tnthao/solienlac/core"

// RegisterAccount contains information needed to self-register a family
// account against a student code.
type RegisterAccount struct {
	Username        string `json:"username" validate:"required,min=4,alphanum_"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	FullName        string `json:"fullName" validate:"required"`
	StudentCode     string `json:"studentCode" validate:"required"`
}

func (ra *RegisterAccount) Validate() error {
	ra.Username = core.CleanString(ra.Username, true /* lower */)
	ra.FullName = core.CleanString(ra.FullName)
	ra.StudentCode = core.CleanString(ra.StudentCode)
	return core.Validate.Struct(ra)
}

// NewQuestion validates quiz-bank input: exactly four options and a
// correct index addressing one of them.
type NewQuestion struct {
	Content      string   `json:"content" validate:"required"`
	Options      []string `json:"options" validate:"len=4,dive,required"`
	CorrectIndex int      `json:"correctIndex" validate:"gte=0,lte=3"`
}

func (nq *NewQuestion) Validate() error {
	nq.Content = core.CleanString(nq.Content)
	return core.Validate.Struct(nq)
}

// NewAnnouncement validates a publication request.
type NewAnnouncement struct {
	ClassID string `json:"classId" validate:"required"`
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	Author  string `json:"author" validate:"required"`
	Target  string `json:"target" validate:"required,oneof=all parents students"`
	Pinned  bool   `json:"pinned"`
}

func (na *NewAnnouncement) Validate() error {
	na.Title = core.CleanString(na.Title)
	na.Author = core.CleanString(na.Author)
	return core.Validate.Struct(na)
}
