package user

import (
	"fmt"
	"testing"

	"petcare/models"
	"petcare/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(u *models.User) error {
	copied := *u
	r.users[u.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Update(u *models.User) error {
	copied := *u
	r.users[u.ID] = &copied
	return nil
}

func (r *fakeUserRepo) UpdateFields(id string, fields map[string]any) error {
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id, utils.ErrNotFound)
	}
	for k, v := range fields {
		s, _ := v.(string)
		switch k {
		case "username":
			u.Username = s
		case "email":
			u.Email = s
		case "imageUrl":
			u.ImageURL = s
		case "passwordHash":
			u.PasswordHash = s
		case "role":
			u.Role = s
		}
	}
	return nil
}

func (r *fakeUserRepo) Delete(id string) error {
	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("user %s: %w", id, utils.ErrNotFound)
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, utils.ErrNotFound)
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByUsername(username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", username, utils.ErrNotFound)
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, utils.ErrNotFound)
}

func (r *fakeUserRepo) GetAll() ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) Count() (int64, error) { return int64(len(r.users)), nil }

func newTestUserService() (*DefaultUserService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return &DefaultUserService{Repo: repo}, repo
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc, _ := newTestUserService()

	resp, err := svc.Register(RegisterInput{Username: "mochi-mom", Email: "m@example.com", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.RoleUser, resp.Role)

	auth, err := svc.Authenticate("mochi-mom", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, resp.ID, auth.ID)

	claims, err := utils.ValidateToken(auth.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, claims.UserID)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc, _ := newTestUserService()
	_, err := svc.Register(RegisterInput{Username: "mochi-mom", Email: "m@example.com", Password: "s3cret"})
	require.NoError(t, err)

	var vErr utils.ValidationError
	_, err = svc.Register(RegisterInput{Username: "mochi-mom", Email: "other@example.com", Password: "x"})
	assert.ErrorAs(t, err, &vErr)

	_, err = svc.Register(RegisterInput{Username: "other", Email: "m@example.com", Password: "x"})
	assert.ErrorAs(t, err, &vErr)
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestUserService()
	_, err := svc.Register(RegisterInput{Username: "mochi-mom", Email: "m@example.com", Password: "s3cret"})
	require.NoError(t, err)

	_, err = svc.Authenticate("mochi-mom", "wrong")
	assert.ErrorIs(t, err, utils.ErrUnauthenticated)

	_, err = svc.Authenticate("nobody", "s3cret")
	assert.ErrorIs(t, err, utils.ErrUnauthenticated)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestUserService()
	resp, err := svc.Register(RegisterInput{Username: "mochi-mom", Email: "m@example.com", Password: "s3cret"})
	require.NoError(t, err)
	actor := models.Actor{ID: resp.ID, Role: models.RoleUser}

	err = svc.ChangePassword(actor, "wrong", "newpass")
	assert.ErrorIs(t, err, utils.ErrForbidden)

	require.NoError(t, svc.ChangePassword(actor, "s3cret", "newpass"))

	_, err = svc.Authenticate("mochi-mom", "s3cret")
	assert.ErrorIs(t, err, utils.ErrUnauthenticated)
	_, err = svc.Authenticate("mochi-mom", "newpass")
	assert.NoError(t, err)
}

func TestChangeRole(t *testing.T) {
	svc, repo := newTestUserService()
	resp, err := svc.Register(RegisterInput{Username: "mochi-mom", Email: "m@example.com", Password: "s3cret"})
	require.NoError(t, err)
	adminActor := models.Actor{ID: "admin-1", Role: models.RoleAdmin}

	_, err = svc.ChangeRole(models.Actor{ID: "u", Role: models.RoleUser}, resp.ID, models.RoleService)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	var vErr utils.ValidationError
	_, err = svc.ChangeRole(adminActor, resp.ID, "OVERLORD")
	assert.ErrorAs(t, err, &vErr)

	updated, err := svc.ChangeRole(adminActor, resp.ID, models.RoleService)
	require.NoError(t, err)
	assert.Equal(t, models.RoleService, updated.Role)

	stored, err := repo.GetByID(resp.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleService, stored.Role)
}

func TestDeleteUserAdminOnly(t *testing.T) {
	svc, repo := newTestUserService()
	resp, err := svc.Register(RegisterInput{Username: "mochi-mom", Email: "m@example.com", Password: "s3cret"})
	require.NoError(t, err)

	err = svc.DeleteUser(models.Actor{ID: "u", Role: models.RoleUser}, resp.ID)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	require.NoError(t, svc.DeleteUser(models.Actor{ID: "admin-1", Role: models.RoleAdmin}, resp.ID))
	_, err = repo.GetByID(resp.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}
