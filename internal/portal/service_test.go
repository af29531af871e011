package portal

import (
	"context"
	"errors"
	"testing"
	"time"

	"semaphore/my-espace/internal/clients"
	"semaphore/my-espace/internal/dto"
	"semaphore/my-espace/internal/kv"
	"semaphore/my-espace/internal/normalize"
	"semaphore/my-espace/internal/session"
)

var refNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

type fakeBackend struct {
	login      dto.LoginResponse
	loginErr   error
	logoutWith string
	fail       bool
	programmes []dto.Programme
	groups     []dto.NoteGroup
	releves    []dto.Releve
	documents  []dto.CourseDocuments
	alerts     []dto.Alerte
	profile    dto.Profile
	dashboard  dto.Dashboard
}

var errBackendDown = errors.New("backend down")

func (f *fakeBackend) err() error {
	if f.fail {
		return errBackendDown
	}
	return nil
}

func (f *fakeBackend) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	return f.login, f.loginErr
}

func (f *fakeBackend) Logout(ctx context.Context, token string) error {
	f.logoutWith = token
	return f.err()
}

func (f *fakeBackend) Dashboard(ctx context.Context, token, studentID string) (dto.Dashboard, error) {
	return f.dashboard, f.err()
}

func (f *fakeBackend) Alertes(ctx context.Context, token, studentID string) ([]dto.Alerte, error) {
	return f.alerts, f.err()
}

func (f *fakeBackend) RecentNotes(ctx context.Context, token, studentID string) ([]dto.Note, error) {
	return nil, f.err()
}

func (f *fakeBackend) NoteGroups(ctx context.Context, token, studentID string) ([]dto.NoteGroup, error) {
	return f.groups, f.err()
}

func (f *fakeBackend) Releves(ctx context.Context, token, studentID string) ([]dto.Releve, error) {
	return f.releves, f.err()
}

func (f *fakeBackend) Programmes(ctx context.Context, token, studentID string) ([]dto.Programme, error) {
	return f.programmes, f.err()
}

func (f *fakeBackend) ProgrammeDocuments(ctx context.Context, token, studentID string) ([]dto.CourseDocuments, error) {
	return f.documents, f.err()
}

func (f *fakeBackend) Profile(ctx context.Context, token, studentID string) (dto.Profile, error) {
	return f.profile, f.err()
}

func newTestService(backend *fakeBackend) *Service {
	return NewService(backend, kv.NewMemory(), time.Hour, normalize.English).WithClock(func() time.Time { return refNow })
}

func studentSession() session.Session {
	return session.Session{LoggedIn: true, LocalID: "s1", Prenom: "Emma", Nom: "Martin", Roles: []string{"STUDENT"}, Token: "tok"}
}

func TestLoginStoresStudentSession(t *testing.T) {
	backend := &fakeBackend{login: dto.LoginResponse{LocalID: "s1", Prenom: "Emma", Roles: []string{"ÉTUDIANT"}, Token: "tok"}}
	svc := newTestService(backend)
	ctx := context.Background()

	sess, err := svc.Login(ctx, "device-1", dto.LoginRequest{Email: "emma@school.fr"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !sess.LoggedIn || sess.Token != "tok" {
		t.Fatalf("unexpected session %+v", sess)
	}
	if !svc.Gate("device-1").CanEnterProtected(ctx) {
		t.Fatalf("expected protected access after login")
	}
	if svc.Gate("device-2").CanEnterProtected(ctx) {
		t.Fatalf("other devices must not share the session")
	}
}

func TestLoginRefusesNonStudent(t *testing.T) {
	backend := &fakeBackend{login: dto.LoginResponse{LocalID: "t1", Roles: []string{"TEACHER"}, Token: "tok"}}
	svc := newTestService(backend)
	ctx := context.Background()

	if _, err := svc.Login(ctx, "device-1", dto.LoginRequest{}); !errors.Is(err, session.ErrRoleDenied) {
		t.Fatalf("expected role denied, got %v", err)
	}
	if _, ok, _ := svc.Store("device-1").Read(ctx); ok {
		t.Fatalf("non-student login must not leave a session")
	}
}

func TestLoginMapsBackendErrors(t *testing.T) {
	svc := newTestService(&fakeBackend{loginErr: &clients.RequestError{Status: 401, Code: "bad_credentials"}})
	if _, err := svc.Login(context.Background(), "d", dto.LoginRequest{}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	svc = newTestService(&fakeBackend{loginErr: errBackendDown})
	if _, err := svc.Login(context.Background(), "d", dto.LoginRequest{}); !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("expected fetch failed, got %v", err)
	}
}

func TestLogoutClearsEvenWhenBackendFails(t *testing.T) {
	backend := &fakeBackend{fail: true}
	svc := newTestService(backend)
	ctx := context.Background()
	if err := svc.Store("device-1").Write(ctx, studentSession()); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := svc.Logout(ctx, "device-1"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if backend.logoutWith != "tok" {
		t.Fatalf("expected backend logout with token, got %q", backend.logoutWith)
	}
	if _, ok, _ := svc.Store("device-1").Read(ctx); ok {
		t.Fatalf("expected cleared session")
	}
}

func TestPagesDegradeOnFetchFailure(t *testing.T) {
	svc := newTestService(&fakeBackend{fail: true})
	ctx := context.Background()
	sess := studentSession()

	if page := svc.Schedule(ctx, sess, "", 0); !page.Degraded || len(page.Courses) != 0 {
		t.Fatalf("unexpected schedule %+v", page)
	}
	if page := svc.Notes(ctx, sess, ""); !page.Degraded || page.Subjects == nil || page.Average != 0 {
		t.Fatalf("unexpected notes %+v", page)
	}
	if page := svc.Releves(ctx, sess); !page.Degraded || page.Groups == nil {
		t.Fatalf("unexpected releves %+v", page)
	}
	if page := svc.Documents(ctx, sess, "recent"); !page.Degraded || page.Courses == nil {
		t.Fatalf("unexpected documents %+v", page)
	}
	if page := svc.Alerts(ctx, sess, ""); !page.Degraded || page.Alerts == nil {
		t.Fatalf("unexpected alerts %+v", page)
	}
	if page := svc.Home(ctx, sess); !page.Degraded || page.Student != "Emma Martin" {
		t.Fatalf("unexpected home %+v", page)
	}
	if page := svc.Profile(ctx, sess); !page.Degraded || page.Profile.Initials != "EM" {
		t.Fatalf("unexpected profile %+v", page)
	}
	if _, err := svc.OpenDocument(ctx, sess, "d1"); !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("expected fetch failed, got %v", err)
	}
}

func TestSchedulePage(t *testing.T) {
	backend := &fakeBackend{programmes: []dto.Programme{
		{LocalID: "a", Jour: "LUNDI", HeureDebut: "09:00", HeureFin: "10:00"},
		{LocalID: "b", Jour: "LUNDI", HeureDebut: "07:30", HeureFin: "08:30"},
		{LocalID: "c", Jour: "VENDREDI", HeureDebut: "08:00", HeureFin: "09:00"},
	}}
	svc := newTestService(backend)
	sess := studentSession()

	today := svc.Schedule(context.Background(), sess, "", 0)
	if today.Selected.Name != "Vendredi" || len(today.Courses) != 1 || today.Courses[0].ID != "c" {
		t.Fatalf("unexpected today %+v", today)
	}
	monday := svc.Schedule(context.Background(), sess, "lundi", 1)
	if monday.Selected.Date.Day() != 18 || len(monday.Courses) != 2 || monday.Courses[0].ID != "b" {
		t.Fatalf("unexpected next monday %+v", monday)
	}
}

func TestNotesAndDocumentsPages(t *testing.T) {
	backend := &fakeBackend{
		groups: []dto.NoteGroup{
			{MatiereName: "Chimie", Moyenne: 16, Notes: []dto.Note{{LocalID: "1", Note: 12}, {LocalID: "2", Note: 19}}},
			{MatiereName: "Maths", Moyenne: 12},
		},
		documents: []dto.CourseDocuments{{
			Programme: dto.Programme{LocalID: "p1", MatiereName: "Maths"},
			Documents: []dto.Document{
				{LocalID: "d1", Title: "Cours.pdf", URL: "https://cdn/d1.pdf", CreatedAt: "2024-03-14T10:00:00Z"},
				{LocalID: "d2", Title: "Vide", CreatedAt: "2024-03-01T10:00:00Z"},
			},
		}},
	}
	svc := newTestService(backend)
	ctx := context.Background()
	sess := studentSession()

	page := svc.Notes(ctx, sess, "best")
	if page.Average != 14 || page.AverageLetter != "B" || page.Subjects[0].Notes[0].ID != "2" {
		t.Fatalf("unexpected notes page %+v", page)
	}
	docs := svc.Documents(ctx, sess, "recent")
	if len(docs.Courses) != 1 || docs.Courses[0].DocumentsCount != 2 {
		t.Fatalf("unexpected documents page %+v", docs)
	}
	target, err := svc.OpenDocument(ctx, sess, "d1")
	if err != nil || target.Extension != "pdf" {
		t.Fatalf("unexpected open target %+v %v", target, err)
	}
	if _, err := svc.OpenDocument(ctx, sess, "d2"); !errors.Is(err, normalize.ErrDocumentUnavailable) {
		t.Fatalf("expected unavailable for missing url, got %v", err)
	}
	if _, err := svc.OpenDocument(ctx, sess, "nope"); !errors.Is(err, normalize.ErrDocumentUnavailable) {
		t.Fatalf("expected unavailable for unknown document, got %v", err)
	}
}
