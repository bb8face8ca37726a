package classroom

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/tnthao/solienlac/core"
)

// Service wraps a DataProvider with the business rules that sit above the
// storage contract: validated registration with password hashing,
// announcement publication with family mail fan-out, and range exports.
type Service struct {
	provider DataProvider
	mailSvc  core.EmailService
	log      core.Logger
}

func NewService(provider DataProvider, mailSvc core.EmailService, log core.Logger) *Service {
	return &Service{provider: provider, mailSvc: mailSvc, log: log}
}

// Provider exposes the underlying backend for callers that only need the
// raw contract.
func (svc *Service) Provider() DataProvider { return svc.provider }

// Register creates a family account linked to the student identified by
// the given code. The password is hashed before it reaches the backend.
func (svc *Service) Register(ctx context.Context, ra RegisterAccount) (User, error) {
	if err := ra.Validate(); err != nil {
		return User{}, err
	}
	st, err := svc.provider.GetStudentByCode(ctx, ra.StudentCode)
	if err != nil {
		return User{}, err
	}
	if st == nil {
		return User{}, core.NewValidationError(nil, core.FieldError{Field: "studentCode", Error: "no student with this code"})
	}
	usr := User{
		Username:  ra.Username,
		FullName:  ra.FullName,
		Role:      RoleApp,
		RelatedID: st.ID,
	}
	if err := usr.SetPassword(ra.Password); err != nil {
		return User{}, err
	}
	created, err := svc.provider.Register(ctx, usr)
	if err == ErrUsernameExists {
		return User{}, core.NewValidationError(err, core.FieldError{Field: "username", Error: err.Error()})
	}
	return created, err
}

// Login returns the matching user with the password stripped, or nil when
// the credentials do not match. A mismatch is not an error.
func (svc *Service) Login(ctx context.Context, username, password string) (*User, error) {
	return svc.provider.Login(ctx, core.CleanString(username, true /* lower */), password)
}

// PublishAnnouncement stores the announcement and, when it targets parents
// (or everyone), mails the class's families. Mailing is fire-and-forget:
// a mail failure never rolls back the write.
func (svc *Service) PublishAnnouncement(ctx context.Context, na NewAnnouncement) (Announcement, error) {
	if err := na.Validate(); err != nil {
		return Announcement{}, err
	}
	ann := Announcement{
		ClassID:   na.ClassID,
		Title:     na.Title,
		Content:   na.Content,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Author:    na.Author,
		Target:    na.Target,
		Pinned:    na.Pinned,
	}
	created, err := svc.provider.AddAnnouncement(ctx, ann)
	if err != nil {
		return Announcement{}, err
	}
	if svc.mailSvc != nil && (created.Target == TargetAll || created.Target == TargetParents) {
		svc.notifyParents(ctx, created)
	}
	return created, nil
}

func (svc *Service) notifyParents(ctx context.Context, ann Announcement) {
	students, err := svc.provider.QueryStudents(ctx, ann.ClassID)
	if err != nil {
		svc.log.Error("announcement mail: listing students", err)
		return
	}
	var to []mail.Address
	for _, st := range students {
		parents, err := svc.provider.QueryParents(ctx, st.ID)
		if err != nil {
			svc.log.Error("announcement mail: listing parents", err)
			return
		}
		for _, p := range parents {
			if p.Email != "" {
				to = append(to, mail.Address{Name: p.FullName, Address: p.Email})
			}
		}
	}
	if len(to) == 0 {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		Bcc:     to,
		Subject: ann.Title,
		BodyStr: fmt.Sprintf("%s\n\n-- %s", ann.Content, ann.Author),
	})
}

// AddQuestion validates and stores a quiz question.
func (svc *Service) AddQuestion(ctx context.Context, nq NewQuestion) (Question, error) {
	if err := nq.Validate(); err != nil {
		return Question{}, err
	}
	return svc.provider.AddQuestion(ctx, Question{
		Content:      nq.Content,
		Options:      nq.Options,
		CorrectIndex: nq.CorrectIndex,
	})
}

// ReportFor derives the weekly or monthly window containing ref and asks
// the backend for the aggregate.
func (svc *Service) ReportFor(ctx context.Context, classID string, period Period, ref time.Time) (Report, error) {
	start, end := PeriodRange(period, ref)
	return svc.provider.GetReport(ctx, classID, period, start, end)
}

// Export renders the attendance or behavior CSV for a class and date range
// and returns the bytes along with the download filename.
func (svc *Service) Export(ctx context.Context, kind, classID, startDate, endDate string) ([]byte, string, error) {
	students, err := svc.provider.QueryStudents(ctx, classID)
	if err != nil {
		return nil, "", err
	}
	var data []byte
	switch kind {
	case ExportAttendance:
		rows, err := svc.provider.GetAttendanceByRange(ctx, classID, startDate, endDate)
		if err != nil {
			return nil, "", err
		}
		data, err = AttendanceCSV(rows, students)
		if err != nil {
			return nil, "", err
		}
	case ExportBehavior:
		rows, err := svc.provider.GetBehaviorsByClassRange(ctx, classID, startDate, endDate)
		if err != nil {
			return nil, "", err
		}
		data, err = BehaviorCSV(rows, students)
		if err != nil {
			return nil, "", err
		}
	default:
		return nil, "", fmt.Errorf("unknown export kind %q", kind)
	}
	return data, ExportFilename(kind, startDate, endDate), nil
}
