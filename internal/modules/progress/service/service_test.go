package service

import (
	"context"
	"testing"

	"anoa.com/jelajahpath/internal/model"
	progressDto "anoa.com/jelajahpath/internal/modules/progress/dto"
	progressRepo "anoa.com/jelajahpath/internal/modules/progress/repository"
	"anoa.com/jelajahpath/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakePathRepo serves a fixed in-memory catalog.
type fakePathRepo struct {
	paths map[uuid.UUID]*model.Path
}

func (f *fakePathRepo) FindPublished(ctx context.Context) ([]model.Path, error) {
	var out []model.Path
	for _, p := range f.paths {
		if p.IsPublished {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePathRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Path, error) {
	p, ok := f.paths[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePathRepo) FindPointsByPath(ctx context.Context, pathID uuid.UUID) ([]model.Point, error) {
	p, ok := f.paths[pathID]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return p.Points, nil
}

func (f *fakePathRepo) FindPointByID(ctx context.Context, id uuid.UUID) (*model.Point, error) {
	for _, p := range f.paths {
		for i := range p.Points {
			if p.Points[i].ID == id {
				return &p.Points[i], nil
			}
		}
	}
	return nil, apperror.ErrNotFound
}

func (f *fakePathRepo) CountPoints(ctx context.Context, pathID uuid.UUID) (int64, error) {
	p, ok := f.paths[pathID]
	if !ok {
		return 0, nil
	}
	return int64(len(p.Points)), nil
}

func (f *fakePathRepo) CountPublished(ctx context.Context) (int64, error) {
	var n int64
	for _, p := range f.paths {
		if p.IsPublished {
			n++
		}
	}
	return n, nil
}

func (f *fakePathRepo) FindRewardPoints(ctx context.Context) ([]model.Point, error) {
	var out []model.Point
	for _, p := range f.paths {
		if !p.IsPublished {
			continue
		}
		for i := range p.Points {
			if p.Points[i].HasReward() {
				out = append(out, p.Points[i])
			}
		}
	}
	return out, nil
}

// fakeProgressRepo mirrors the storage semantics: the visit set-add and the
// reward grant are insert-if-absent, the completion transition is guarded.
type fakeProgressRepo struct {
	visits   map[string]bool
	progress map[string]*model.UserPathProgress
	items    map[string]*model.UserItem
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{
		visits:   make(map[string]bool),
		progress: make(map[string]*model.UserPathProgress),
		items:    make(map[string]*model.UserItem),
	}
}

func key(a, b uuid.UUID) string { return a.String() + "/" + b.String() }

func (f *fakeProgressRepo) RecordVisit(ctx context.Context, userID uuid.UUID, point *model.Point, totalPoints int64) (*progressRepo.VisitResult, error) {
	result := &progressRepo.VisitResult{}

	vk := key(userID, point.ID)
	result.NewVisit = !f.visits[vk]
	f.visits[vk] = true

	pk := key(userID, point.PathID)
	prog, ok := f.progress[pk]
	if !ok {
		prog = &model.UserPathProgress{
			UserID: userID,
			PathID: point.PathID,
			Status: model.StatusInProgress,
		}
		f.progress[pk] = prog
	}
	if result.NewVisit {
		prog.VisitedStopsCount++
	}
	if prog.Status != model.StatusCompleted && totalPoints > 0 &&
		int64(prog.VisitedStopsCount) >= totalPoints {
		prog.Status = model.StatusCompleted
	}

	if point.HasReward() {
		ik := key(userID, point.ID)
		if item, ok := f.items[ik]; ok {
			result.Item = item
		} else {
			item := &model.UserItem{
				ID:          uuid.New(),
				UserID:      userID,
				PointID:     point.ID,
				RewardLabel: *point.RewardLabel,
			}
			f.items[ik] = item
			result.RewardGranted = true
			result.Item = item
		}
	}

	cp := *prog
	result.Progress = &cp
	return result, nil
}

func (f *fakeProgressRepo) FindByUserAndPath(ctx context.Context, userID, pathID uuid.UUID) (*model.UserPathProgress, error) {
	prog, ok := f.progress[key(userID, pathID)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *prog
	return &cp, nil
}

func (f *fakeProgressRepo) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]model.UserPathProgress, error) {
	var out []model.UserPathProgress
	for _, p := range f.progress {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProgressRepo) FindVisitedPointIDs(ctx context.Context, userID, pathID uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

func strPtr(s string) *string { return &s }

// testPath builds the two-stop path from the walkthrough scenario: p1 plain
// with a 50 m radius, p2 with a 30 m radius carrying the "Coin" reward.
func testPath() *model.Path {
	pathID := uuid.New()
	return &model.Path{
		ID:          pathID,
		Name:        "Scenario Walk",
		IsPublished: true,
		Points: []model.Point{
			{
				ID:           uuid.New(),
				PathID:       pathID,
				Latitude:     -6.2000,
				Longitude:    106.8000,
				RadiusMeters: 50,
				Order:        1,
			},
			{
				ID:           uuid.New(),
				PathID:       pathID,
				Latitude:     -6.2100,
				Longitude:    106.8100,
				RadiusMeters: 30,
				Order:        2,
				RewardLabel:  strPtr("Coin"),
			},
		},
	}
}

func newTestService(path *model.Path) (ProgressService, *fakeProgressRepo) {
	repo := newFakeProgressRepo()
	pathRepo := &fakePathRepo{paths: map[uuid.UUID]*model.Path{path.ID: path}}
	svc := NewProgressService(repo, pathRepo, nil, 0)
	return svc, repo
}

func TestRecordFixWalkThrough(t *testing.T) {
	ctx := context.Background()
	path := testPath()
	svc, _ := newTestService(path)
	userID := uuid.New()

	// Standing at p1: one visit, in progress, no reward.
	resp, err := svc.RecordFix(ctx, userID, progressDto.RecordVisitRequest{
		PathID:    path.ID.String(),
		Latitude:  path.Points[0].Latitude,
		Longitude: path.Points[0].Longitude,
	})
	require.NoError(t, err)
	require.Len(t, resp.VisitedPoints, 1)
	assert.True(t, resp.VisitedPoints[0].NewVisit)
	assert.False(t, resp.VisitedPoints[0].RewardGranted)
	assert.Equal(t, string(model.StatusInProgress), resp.Progress.Status)
	assert.Equal(t, 1, resp.Progress.VisitedStopsCount)

	// Standing at p2: path completes and the Coin is granted.
	resp, err = svc.RecordFix(ctx, userID, progressDto.RecordVisitRequest{
		PathID:    path.ID.String(),
		Latitude:  path.Points[1].Latitude,
		Longitude: path.Points[1].Longitude,
	})
	require.NoError(t, err)
	require.Len(t, resp.VisitedPoints, 1)
	assert.True(t, resp.VisitedPoints[0].RewardGranted)
	require.NotNil(t, resp.VisitedPoints[0].RewardLabel)
	assert.Equal(t, "Coin", *resp.VisitedPoints[0].RewardLabel)
	assert.Equal(t, string(model.StatusCompleted), resp.Progress.Status)
	assert.Equal(t, 2, resp.Progress.VisitedStopsCount)
}

func TestRecordFixRevisitIsNoOp(t *testing.T) {
	ctx := context.Background()
	path := testPath()
	svc, repo := newTestService(path)
	userID := uuid.New()

	for _, pt := range path.Points {
		_, err := svc.RecordFix(ctx, userID, progressDto.RecordVisitRequest{
			PathID:    path.ID.String(),
			Latitude:  pt.Latitude,
			Longitude: pt.Longitude,
		})
		require.NoError(t, err)
	}

	// Revisit p2: completed stays completed, the count stays at 2 and the
	// existing item is returned without a second grant.
	resp, err := svc.RecordFix(ctx, userID, progressDto.RecordVisitRequest{
		PathID:    path.ID.String(),
		Latitude:  path.Points[1].Latitude,
		Longitude: path.Points[1].Longitude,
	})
	require.NoError(t, err)
	require.Len(t, resp.VisitedPoints, 1)
	assert.False(t, resp.VisitedPoints[0].NewVisit)
	assert.False(t, resp.VisitedPoints[0].RewardGranted)
	assert.Equal(t, string(model.StatusCompleted), resp.Progress.Status)
	assert.Equal(t, 2, resp.Progress.VisitedStopsCount)
	assert.Len(t, repo.items, 1)
}

func TestRecordFixOutsideAllGeofences(t *testing.T) {
	ctx := context.Background()
	path := testPath()
	svc, _ := newTestService(path)
	userID := uuid.New()

	// A kilometer away from everything: no visits, path still not started.
	resp, err := svc.RecordFix(ctx, userID, progressDto.RecordVisitRequest{
		PathID:    path.ID.String(),
		Latitude:  -6.3000,
		Longitude: 106.9000,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.VisitedPoints)
	assert.Equal(t, string(model.StatusNotStarted), resp.Progress.Status)
	assert.Zero(t, resp.Progress.VisitedStopsCount)
}

func TestRecordFixUnknownPath(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(testPath())

	_, err := svc.RecordFix(ctx, uuid.New(), progressDto.RecordVisitRequest{
		PathID:    uuid.New().String(),
		Latitude:  -6.2,
		Longitude: 106.8,
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestRecordFixUnpublishedPath(t *testing.T) {
	ctx := context.Background()
	path := testPath()
	path.IsPublished = false
	svc, _ := newTestService(path)

	_, err := svc.RecordFix(ctx, uuid.New(), progressDto.RecordVisitRequest{
		PathID:    path.ID.String(),
		Latitude:  -6.2,
		Longitude: 106.8,
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestRecordFixInvalidCoordinates(t *testing.T) {
	ctx := context.Background()
	path := testPath()
	svc, _ := newTestService(path)

	_, err := svc.RecordFix(ctx, uuid.New(), progressDto.RecordVisitRequest{
		PathID:    path.ID.String(),
		Latitude:  123.0,
		Longitude: 106.8,
	})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestGetPathProgressBeforeFirstVisit(t *testing.T) {
	ctx := context.Background()
	path := testPath()
	svc, _ := newTestService(path)

	progress, err := svc.GetPathProgress(ctx, uuid.New(), path.ID)
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusNotStarted), progress.Status)
	assert.Zero(t, progress.VisitedStopsCount)
	assert.Equal(t, 2, progress.TotalStops)
}
