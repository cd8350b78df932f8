package inmemdb

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/userql/core/user"
)

func newRepo(t *testing.T, users ...user.NewUser) user.Repository {
	repo := NewUserRepository(Open())
	for _, nu := range users {
		if _, err := repo.CreateUser(context.Background(), nu); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	return repo
}

var (
	farid = user.NewUser{Name: "Farid", Email: "farid@example.com", Age: 20}
	bob   = user.NewUser{Name: "Bob", Email: "bob@example.com", Age: 17}
)

func Test_userRepository_scenario(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	f, err := repo.CreateUser(ctx, farid)
	require.NoError(t, err)
	assert.Equal(t, 1, f.ID)

	b, err := repo.CreateUser(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, 2, b.ID)

	adults, err := repo.FilterUsers(ctx, user.QueryFilter{Age: null.IntFrom(18)})
	require.NoError(t, err)
	assert.Equal(t, []user.User{f}, adults)

	deleted, err := repo.DeleteUserByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, deleted)

	all, err := repo.QueryAllUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []user.User{b}, all)
}

func Test_userRepository_CreateUser(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	var lastID int
	for i := 0; i < 5; i++ {
		usr, err := repo.CreateUser(ctx, farid)
		require.NoError(t, err)
		if usr.ID <= lastID {
			t.Errorf("failed! ID = %d; want > %d", usr.ID, lastID)
		}
		lastID = usr.ID
	}

	usr, err := repo.CreateUser(ctx, user.NewUser{Name: "A", Email: "a@x.com", Age: 20})
	require.NoError(t, err)
	got, err := repo.GetUserByID(ctx, usr.ID)
	require.NoError(t, err)
	assert.Equal(t, user.User{ID: usr.ID, Name: "A", Email: "a@x.com", Age: 20}, got)
}

func Test_userRepository_CreateUser_reusesIDAfterDelete(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, farid, bob)

	_, err := repo.DeleteUserByID(ctx, 1)
	require.NoError(t, err)

	usr, err := repo.CreateUser(ctx, farid)
	require.NoError(t, err)
	assert.Equal(t, 2, usr.ID) // len + 1
}

func Test_userRepository_GetUserByID(t *testing.T) {
	repo := newRepo(t, farid, bob)

	tests := []struct {
		name     string
		id       int
		wantName string
		wantErr  error
	}{
		{name: "first", id: 1, wantName: "Farid"},
		{name: "second", id: 2, wantName: "Bob"},
		{name: "zero", id: 0, wantErr: user.ErrNotFound},
		{name: "unknown", id: 99, wantErr: user.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usr, err := repo.GetUserByID(context.Background(), tt.id)
			if err != tt.wantErr {
				t.Fatalf("GetUserByID() error = %v, wantErr %v", err, tt.wantErr)
			}
			assert.Equal(t, tt.wantName, usr.Name)
		})
	}
}

func Test_userRepository_FilterUsers(t *testing.T) {
	repo := newRepo(t, farid, bob, user.NewUser{Name: "Fara", Email: "FARA@test.cd", Age: 18})

	names := func(users []user.User) []string {
		res := make([]string, 0, len(users))
		for _, u := range users {
			res = append(res, u.Name)
		}
		return res
	}

	tests := []struct {
		name   string
		filter user.QueryFilter
		want   []string
	}{
		{name: "no criteria", want: []string{"Farid", "Bob", "Fara"}},
		{name: "name case-insensitive", filter: user.QueryFilter{Name: null.StringFrom("far")}, want: []string{"Farid", "Fara"}},
		{name: "email case-insensitive", filter: user.QueryFilter{Email: null.StringFrom("fara@")}, want: []string{"Fara"}},
		{name: "min age", filter: user.QueryFilter{Age: null.IntFrom(18)}, want: []string{"Farid", "Fara"}},
		{name: "min age 0", filter: user.QueryFilter{Age: null.IntFrom(0)}, want: []string{"Farid", "Bob", "Fara"}},
		{
			name:   "all criteria",
			filter: user.QueryFilter{Name: null.StringFrom("FAR"), Email: null.StringFrom("example"), Age: null.IntFrom(19)},
			want:   []string{"Farid"},
		},
		{name: "no match", filter: user.QueryFilter{Name: null.StringFrom("lol")}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, err := repo.FilterUsers(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(users))
		})
	}
}

func Test_userRepository_UpdateUser(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		id      int
		uu      user.UpdateUser
		want    user.User
		wantErr error
	}{
		{name: "nothing set", id: 1, want: user.User{ID: 1, Name: "Farid", Email: "farid@example.com", Age: 20}},
		{name: "name only", id: 1, uu: user.UpdateUser{Name: null.StringFrom("Z")}, want: user.User{ID: 1, Name: "Z", Email: "farid@example.com", Age: 20}},
		{name: "email set to empty", id: 2, uu: user.UpdateUser{Email: null.StringFrom("")}, want: user.User{ID: 2, Name: "Bob", Age: 17}},
		{
			name: "all fields", id: 2,
			uu:   user.UpdateUser{Name: null.StringFrom("Bobby"), Email: null.StringFrom("b@x.com"), Age: null.IntFrom(30)},
			want: user.User{ID: 2, Name: "Bobby", Email: "b@x.com", Age: 30},
		},
		{name: "not found", id: 42, uu: user.UpdateUser{Name: null.StringFrom("Z")}, wantErr: user.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newRepo(t, farid, bob)
			before, _ := repo.QueryAllUsers(ctx)

			usr, err := repo.UpdateUser(ctx, tt.id, tt.uu)
			if err != tt.wantErr {
				t.Fatalf("UpdateUser() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				after, _ := repo.QueryAllUsers(ctx)
				assert.Equal(t, before, after)
				return
			}
			assert.Equal(t, tt.want, usr)

			got, err := repo.GetUserByID(ctx, tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_userRepository_DeleteUserByID(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, farid, bob)

	deleted, err := repo.DeleteUserByID(ctx, 42)
	require.NoError(t, err)
	assert.False(t, deleted)
	all, _ := repo.QueryAllUsers(ctx)
	assert.Len(t, all, 2)

	deleted, err = repo.DeleteUserByID(ctx, 2)
	require.NoError(t, err)
	assert.True(t, deleted)
	all, _ = repo.QueryAllUsers(ctx)
	assert.Equal(t, []user.User{{ID: 1, Name: "Farid", Email: "farid@example.com", Age: 20}}, all)
}

func Test_userRepository_DeleteAllUsers(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, farid, bob)

	require.NoError(t, repo.DeleteAllUsers(ctx))
	all, err := repo.QueryAllUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	usr, err := repo.CreateUser(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, 1, usr.ID)
}

func Test_userRepository_QueryAllUsers_snapshot(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, farid)

	all, _ := repo.QueryAllUsers(ctx)
	all[0].Name = "changed"

	usr, _ := repo.GetUserByID(ctx, 1)
	assert.Equal(t, "Farid", usr.Name)
}

func Test_userRepository_concurrentCreates(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	const n = 50
	ids := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			usr, err := repo.CreateUser(ctx, bob)
			if err != nil {
				t.Errorf("CreateUser() failed: %v", err)
				return
			}
			_, _ = repo.QueryAllUsers(ctx)
			ids <- usr.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool, n)
	for id := range ids {
		if seen[id] {
			t.Errorf("failed! ID %d assigned twice", id)
		}
		seen[id] = true
	}
	assert.Len(t, seen, n)
}
