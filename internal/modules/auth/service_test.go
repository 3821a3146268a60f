package auth

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/terravista/estate-core/internal/models"
	"github.com/terravista/estate-core/internal/pkg/jwt"
)

type fakeUsers struct {
	users map[string]*models.User // keyed by id hex
}

func newFakeUsers(t *testing.T, username, password string) (*fakeUsers, *models.User) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	u := &models.User{
		Username: username,
		Password: string(hash),
		Role:     models.RoleAdmin,
	}
	u.Touch(time.Now())
	return &fakeUsers{users: map[string]*models.User{u.ID.Hex(): u}}, u
}

func (f *fakeUsers) FindByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id, passwordHash string) error {
	f.users[id].Password = passwordHash
	return nil
}

func newTestService(t *testing.T) (*Service, *models.User) {
	t.Helper()
	users, u := newFakeUsers(t, "admin", "correct-horse")
	svc := NewService(users, jwt.New("test-secret"))
	svc.failDelay = 0
	return svc, u
}

func TestLoginAndVerify(t *testing.T) {
	svc, u := newTestService(t)

	token, logged, err := svc.Login(context.Background(), "admin", "correct-horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if logged.Username != "admin" {
		t.Errorf("user = %q", logged.Username)
	}

	verified, err := svc.VerifyToken(context.Background(), token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if verified.ID != u.ID {
		t.Errorf("verified id = %s, want %s", verified.ID.Hex(), u.ID.Hex())
	}
}

func TestLoginFailures(t *testing.T) {
	svc, _ := newTestService(t)

	if _, _, err := svc.Login(context.Background(), "admin", "wrong"); err != ErrWrongPassword {
		t.Errorf("wrong password: err = %v, want ErrWrongPassword", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody", "whatever"); err != ErrUserNotFound {
		t.Errorf("unknown user: err = %v, want ErrUserNotFound", err)
	}
}

func TestVerifyTokenFailures(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.VerifyToken(context.Background(), "garbage"); err == nil {
		t.Error("garbage token verified")
	}

	// Token for a user that no longer exists; same signing secret.
	other := NewService(&fakeUsers{users: map[string]*models.User{}}, jwt.New("test-secret"))
	other.failDelay = 0
	token, _, err := svc.Login(context.Background(), "admin", "correct-horse")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := other.VerifyToken(context.Background(), token); err == nil {
		t.Error("token for deleted user verified")
	}
}

func TestChangePassword(t *testing.T) {
	svc, u := newTestService(t)
	id := u.ID.Hex()

	if err := svc.ChangePassword(context.Background(), id, "correct-horse", "short"); err != ErrPasswordTooShort {
		t.Errorf("short password: err = %v, want ErrPasswordTooShort", err)
	}
	if err := svc.ChangePassword(context.Background(), id, "wrong", "long-enough-pass"); err != ErrWrongPassword {
		t.Errorf("wrong current: err = %v, want ErrWrongPassword", err)
	}
	if err := svc.ChangePassword(context.Background(), id, "correct-horse", "long-enough-pass"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "admin", "long-enough-pass"); err != nil {
		t.Errorf("login with new password: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "admin", "correct-horse"); err != ErrWrongPassword {
		t.Errorf("old password still works: err = %v", err)
	}
}

func TestChangePasswordUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)
	if err := svc.ChangePassword(context.Background(), primitive.NewObjectID().Hex(), "x", "long-enough-pass"); err != ErrUserNotFound {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}
