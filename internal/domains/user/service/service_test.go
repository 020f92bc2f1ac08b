package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"ihome/config"
	"ihome/infras/otel/mocks"
	s3Mocks "ihome/infras/s3/mocks"
	userMocks "ihome/internal/domains/user/mocks"
	"ihome/internal/domains/user/model"
	"ihome/internal/domains/user/model/dto"
	"ihome/internal/domains/user/service"
	cacheMocks "ihome/shared/cache/mocks"
	"ihome/shared/failure"
	gModel "ihome/shared/model"
)

const actor = "user-1"

type fixture struct {
	repo  *userMocks.MockUser
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
	svc   service.User
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f := fixture{
		repo:  userMocks.NewMockUser(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}
	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel(), f.s3)

	return f
}

func TestUserService_Profile(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), "user:get:"+actor, gomock.Any()).Return(errors.New("cache miss"))
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{
		ID:       actor,
		Mobile:   "13800138000",
		Username: "tenant",
		Metadata: gModel.Metadata{CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
	}, nil)
	f.cache.EXPECT().Save(gomock.Any(), "user:get:"+actor, gomock.Any(), 60).Return(nil).AnyTimes()

	res, err := f.svc.Profile(context.Background(), actor)

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, "tenant", res.Name)
	assert.Equal(t, "13800138000", res.Mobile)
	assert.Equal(t, "2024-01-02 03:04:05", res.CreatedAt)
}

func TestUserService_Profile_NotFound(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

	_, err := f.svc.Profile(context.Background(), actor)

	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUserService_Rename(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantErr   error
		wantCode  int
	}{
		{
			name: "successful rename",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Equal(t, "landlord", fields[model.FieldUsername])

						return nil
					})
				f.cache.EXPECT().Delete(gomock.Any(), "user:get:"+actor).Return(nil).AnyTimes()
			},
		},
		{
			name: "username taken",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr:  model.ErrUsernameTaken,
			wantCode: http.StatusConflict,
		},
		{
			name: "store failure",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("db down"))
			},
			wantCode: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Rename(context.Background(), actor, dto.RenameRequest{Name: "landlord"})

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestUserService_UploadAvatar(t *testing.T) {
	req := dto.UploadAvatarRequest{Avatar: multipart.FileHeader{Filename: "me.png"}}

	t.Run("replaces previous avatar", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: actor, AvatarURL: "https://cdn/user/old.png"}, nil)
		f.s3.EXPECT().UploadFile(gomock.Any(), model.EntityName, gomock.Any(), gomock.Any()).Return("https://cdn/user/new.png", nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.s3.EXPECT().ObjectNameFromURL("https://cdn/user/old.png").Return("user", "old.png")
		f.s3.EXPECT().DeleteFile(gomock.Any(), "user", "old.png").Return(nil)
		f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := f.svc.UploadAvatar(context.Background(), actor, req)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, "https://cdn/user/new.png", res.AvatarURL)
	})

	t.Run("upload failure", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: actor}, nil)
		f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("s3 down"))

		_, err := f.svc.UploadAvatar(context.Background(), actor, req)

		assert.Equal(t, http.StatusBadGateway, failure.GetCode(err))
	})

	t.Run("store failure removes uploaded object", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: actor}, nil)
		f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("https://cdn/user/new.png", nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
		f.s3.EXPECT().ObjectNameFromURL("https://cdn/user/new.png").Return("user", "new.png")
		f.s3.EXPECT().DeleteFile(gomock.Any(), model.EntityName, "new.png").Return(nil)

		_, err := f.svc.UploadAvatar(context.Background(), actor, req)

		assert.True(t, failure.IsStoreUnavailable(err))
	})
}

func TestUserService_SetRealName(t *testing.T) {
	req := dto.RealNameRequest{RealName: "Zhang San", IDCard: "11010519491231002X"}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantErr   error
	}{
		{
			name: "first time",
			setupMock: func(f fixture) {
				f.repo.EXPECT().UpdateAffected(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
				f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "already set",
			setupMock: func(f fixture) {
				f.repo.EXPECT().UpdateAffected(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr: model.ErrRealNameAlreadySet,
		},
		{
			name: "unknown user",
			setupMock: func(f fixture) {
				f.repo.EXPECT().UpdateAffected(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: model.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.SetRealName(context.Background(), actor, req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr == nil {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
