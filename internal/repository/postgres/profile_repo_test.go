package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"conferencecentral/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var profileRowColumns = []string{"user_id", "display_name", "main_email", "tee_shirt_size", "conference_keys_to_attend", "session_keys_wishlist", "created_at", "updated_at"}

func TestProfileRepository_GetOrCreate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	p := domain.NewProfile(&domain.Identity{UserID: "user-1", Email: "ada@example.com", DisplayName: "Ada"}, now)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Profile
		wantErr error
	}{
		{
			name: "created",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO profiles \(user_id, display_name, main_email`).
					WithArgs("user-1", "Ada", "ada@example.com", "NOT_SPECIFIED", "{}", "{}", now, now).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery(`SELECT user_id, display_name, main_email, tee_shirt_size .* FROM profiles WHERE user_id = \$1`).
					WithArgs("user-1").
					WillReturnRows(sqlmock.NewRows(profileRowColumns).
						AddRow("user-1", "Ada", "ada@example.com", "NOT_SPECIFIED", "{}", "{}", now, now))
			},
			want: p,
		},
		{
			name: "existing profile keeps stored lists",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO profiles`).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(`FROM profiles WHERE user_id = \$1`).
					WithArgs("user-1").
					WillReturnRows(sqlmock.NewRows(profileRowColumns).
						AddRow("user-1", "Ada L", "ada@example.com", "M_W", "{conf-1,conf-2}", "{sess-9}", now, now))
			},
			want: &domain.Profile{
				UserID: "user-1", DisplayName: "Ada L", MainEmail: "ada@example.com", TeeShirtSize: domain.TeeShirtMW,
				ConferenceKeysToAttend: []string{"conf-1", "conf-2"}, SessionKeysWishlist: []string{"sess-9"},
				CreatedAt: now, UpdatedAt: now,
			},
		},
		{
			name: "insert fails",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO profiles`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := NewProfileRepository(db).GetOrCreate(ctx, p)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProfileRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM profiles WHERE user_id = \$1`).WithArgs("ghost").WillReturnError(sql.ErrNoRows)
	_, err = NewProfileRepository(db).GetByID(context.Background(), "ghost")
	require.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestProfileRepository_GetMulti(t *testing.T) {
	now := time.Now().UTC()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM profiles WHERE user_id = ANY\(\$1\)`).
		WithArgs(`{"u1","u2"}`).
		WillReturnRows(sqlmock.NewRows(profileRowColumns).
			AddRow("u2", "Grace", "grace@example.com", "NOT_SPECIFIED", "{}", "{}", now, now))

	got, err := NewProfileRepository(db).GetMulti(context.Background(), []string{"u1", "u2"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Grace", got["u2"].DisplayName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_GetMulti_EmptySkipsQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	got, err := NewProfileRepository(db).GetMulti(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_UpdateDetails(t *testing.T) {
	now := time.Now().UTC()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`UPDATE profiles\s+SET display_name = COALESCE\(NULLIF\(\$1, ''\), display_name\)`).
		WithArgs("", "L_M", "user-1").
		WillReturnRows(sqlmock.NewRows(profileRowColumns).
			AddRow("user-1", "Ada", "ada@example.com", "L_M", "{}", "{}", now, now))

	got, err := NewProfileRepository(db).UpdateDetails(context.Background(), "user-1", domain.ProfileUpdate{TeeShirtSize: domain.TeeShirtLM})
	require.NoError(t, err)
	assert.Equal(t, domain.TeeShirtLM, got.TeeShirtSize)
	assert.Equal(t, "Ada", got.DisplayName)
	require.NoError(t, mock.ExpectationsWereMet())
}
