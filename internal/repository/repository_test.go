package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"smartattend/internal/model"
	"smartattend/internal/repository"
	"smartattend/internal/testutils"
)

func TestUserRepository(t *testing.T) {
	gormDB := testutils.SetupTestDB(t)
	repo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	user := &model.User{Name: "A", Email: "a@x.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	assert.Equal(t, uint(1), user.ID)

	found, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	exists, err := repo.ExistsByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.FindByEmail(ctx, "missing@x.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// the unique index backs the application-level duplicate check
	dup := &model.User{Name: "B", Email: "a@x.com", PasswordHash: "hash"}
	assert.Error(t, repo.Create(ctx, dup))
}

func TestClassroomRepository(t *testing.T) {
	gormDB := testutils.SetupTestDB(t)
	repo := repository.NewClassroomRepository(gormDB)
	ctx := context.Background()

	classrooms, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, classrooms)
	assert.NotNil(t, classrooms)

	room := "Block B"
	require.NoError(t, repo.Upsert(ctx, &model.Classroom{Name: "Physics", StaticQRCode: "QR-PHY"}))
	require.NoError(t, repo.Upsert(ctx, &model.Classroom{Name: "Maths", StaticQRCode: "QR-MAT"}))
	require.NoError(t, repo.Upsert(ctx, &model.Classroom{Name: "Physics Lab", StaticQRCode: "QR-PHY", Location: &room}))

	classrooms, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, classrooms, 2)
	assert.Equal(t, "Physics Lab", classrooms[0].Name)
	require.NotNil(t, classrooms[0].Location)
	assert.Equal(t, "Block B", *classrooms[0].Location)
	assert.Equal(t, "Maths", classrooms[1].Name)

	exists, err := repo.Exists(ctx, classrooms[1].ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, 999)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.FindByID(ctx, 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAttendanceRepository_ListByStudentKeepsInsertionOrder(t *testing.T) {
	gormDB := testutils.SetupTestDB(t)
	repo := repository.NewAttendanceRepository(gormDB)
	ctx := context.Background()
	classroom := testutils.SeedClassroom(t, gormDB, "Physics", "QR-PHY")
	users := repository.NewUserRepository(gormDB)
	require.NoError(t, users.Create(ctx, &model.User{Name: "A", Email: "a@x.com", PasswordHash: "h"}))
	require.NoError(t, users.Create(ctx, &model.User{Name: "B", Email: "b@x.com", PasswordHash: "h"}))

	now := time.Now().UTC()
	for i, studentID := range []uint{1, 2, 1} {
		require.NoError(t, repo.Create(ctx, &model.Attendance{
			StudentID:    studentID,
			ClassroomID:  classroom.ID,
			Timestamp:    now.Add(time.Duration(i) * time.Second),
			VerifiedFace: i == 2,
		}))
	}

	records, err := repo.ListByStudent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, uint(1), records[0].ID)
	assert.Equal(t, uint(3), records[1].ID)
	assert.False(t, records[0].VerifiedFace)
	assert.True(t, records[1].VerifiedFace)
	assert.False(t, records[1].VerifiedLocation)

	none, err := repo.ListByStudent(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFocusRepository(t *testing.T) {
	gormDB := testutils.SetupTestDB(t)
	repo := repository.NewFocusRepository(gormDB)
	ctx := context.Background()
	require.NoError(t, repository.NewUserRepository(gormDB).Create(ctx, &model.User{Name: "A", Email: "a@x.com", PasswordHash: "h"}))

	_, err := repo.FindActiveByStudent(ctx, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	session := &model.FocusMode{StudentID: 1, StartTime: time.Now().UTC(), ActiveStatus: true}
	require.NoError(t, repo.Create(ctx, session))

	active, err := repo.FindActiveByStudent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, session.ID, active.ID)

	count, err := repo.CountActiveByStudent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	end := time.Now().UTC()
	active.EndTime = &end
	active.ActiveStatus = false
	require.NoError(t, repo.Update(ctx, active))

	count, err = repo.CountActiveByStudent(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestFocusRepository_WithTransactionRollsBack(t *testing.T) {
	gormDB := testutils.SetupTestDB(t)
	repo := repository.NewFocusRepository(gormDB)
	ctx := context.Background()
	require.NoError(t, repository.NewUserRepository(gormDB).Create(ctx, &model.User{Name: "A", Email: "a@x.com", PasswordHash: "h"}))

	err := repo.WithTransaction(ctx, func(ctx context.Context, tx repository.FocusRepository) error {
		if err := tx.Create(ctx, &model.FocusMode{StudentID: 1, StartTime: time.Now().UTC(), ActiveStatus: true}); err != nil {
			return err
		}
		return gorm.ErrInvalidTransaction
	})
	require.ErrorIs(t, err, gorm.ErrInvalidTransaction)

	count, err := repo.CountActiveByStudent(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, count)
}
