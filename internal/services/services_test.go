package services

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/popgo-backend/internal/config"
	"github.com/javajoker/popgo-backend/internal/errs"
	"github.com/javajoker/popgo-backend/internal/models"
	"github.com/javajoker/popgo-backend/internal/pipeline"
	"github.com/javajoker/popgo-backend/internal/session"
	"github.com/javajoker/popgo-backend/internal/utils"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestComputeScore(t *testing.T) {
	collection := []pipeline.Item{
		{Title: "Batman", Series: []string{"DC", "Heroes"}, Exclusive: true},
		{Title: "Joker", Series: []string{"DC"}},
		{Title: "Groot", Series: []string{"Marvel"}},
	}

	score := ComputeScore(collection, 4)

	assert.Equal(t, 3, score.CollectionCount)
	assert.Equal(t, 1, score.ExclusiveCount)
	assert.Equal(t, 3, score.SeriesCount)
	// 3*10 + 1*5 + 4*2 + 3*1
	assert.Equal(t, int64(46), score.Points)
	assert.Equal(t, models.LoyaltyLevelBronze, score.Level)
	assert.Equal(t, []string{"first_pop"}, score.Badges)
}

func TestComputeScoreEmpty(t *testing.T) {
	score := ComputeScore(nil, 0)
	assert.Zero(t, score.Points)
	assert.Equal(t, models.LoyaltyLevelBronze, score.Level)
	assert.Empty(t, score.Badges)
}

func TestLevelFor(t *testing.T) {
	cases := map[int64]models.LoyaltyLevel{
		0:    models.LoyaltyLevelBronze,
		99:   models.LoyaltyLevelBronze,
		100:  models.LoyaltyLevelSilver,
		250:  models.LoyaltyLevelGold,
		999:  models.LoyaltyLevelPlatinum,
		1000: models.LoyaltyLevelDiamond,
		5000: models.LoyaltyLevelDiamond,
	}
	for points, want := range cases {
		assert.Equal(t, want, LevelFor(points), "points=%d", points)
	}
}

func TestNextLevelAndProgress(t *testing.T) {
	next, need, ok := NextLevel(models.LoyaltyLevelSilver)
	require.True(t, ok)
	assert.Equal(t, models.LoyaltyLevelGold, next)
	assert.Equal(t, int64(250), need)

	left, pct := progress(models.LoyaltyLevelSilver, 175, need)
	assert.Equal(t, int64(75), left)
	assert.Equal(t, 50.0, pct)

	_, _, ok = NextLevel(models.LoyaltyLevelDiamond)
	assert.False(t, ok)
}

func TestNewItemView(t *testing.T) {
	date := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	v := NewItemView(pipeline.Item{
		ID:            "a",
		Title:         "Batman",
		Number:        "01",
		Condition:     pipeline.Some(pipeline.ConditionMint),
		PurchasePrice: pipeline.Some(12.5),
		PurchaseDate:  pipeline.Some(date),
	})

	require.NotNil(t, v.Condition)
	assert.Equal(t, "mint", *v.Condition)
	require.NotNil(t, v.PurchaseDate)
	assert.Equal(t, "2024-03-09", *v.PurchaseDate)
	assert.Equal(t, 12.5, *v.PurchasePrice)
	assert.Nil(t, v.Notes)
	assert.NotNil(t, v.Series)
}

func TestRunListUsesParams(t *testing.T) {
	source := make([]pipeline.Item, 0, 12)
	for i := 0; i < 12; i++ {
		source = append(source, pipeline.Item{ID: string(rune('a' + i)), Title: strings.Repeat("x", i+1)})
	}

	res := runList(source, utils.ListParams{
		Sort: pipeline.SortState{Field: pipeline.SortByTitle, Direction: pipeline.Descending},
		Page: pipeline.PageState{CurrentPage: 2, ItemsPerPage: 10},
		Lang: "PL",
	})

	assert.Len(t, res.Items, 2)
	assert.Equal(t, 2, res.Result.TotalPages)
	assert.Equal(t, 12, res.Result.Stats.FilteredCount)
	assert.Equal(t, "x", res.Items[1].Title)
}

func TestTrimmedPtr(t *testing.T) {
	blank := "   "
	word := " hi "
	assert.Nil(t, trimmedPtr(nil))
	assert.Nil(t, trimmedPtr(&blank))
	assert.Equal(t, "hi", *trimmedPtr(&word))
}

func TestApplyConditionAndDate(t *testing.T) {
	item := &models.CollectionItem{}
	good := "Near_Mint"
	require.NoError(t, applyCondition(item, &good))
	assert.Equal(t, models.ConditionNearMint, *item.Condition)

	bad := "broken"
	assert.ErrorIs(t, applyCondition(item, &bad), errs.ErrInvalidInput)

	date := "2023-12-01"
	require.NoError(t, applyDate(item, &date))
	assert.Equal(t, 2023, item.PurchaseDate.Year())

	empty := ""
	require.NoError(t, applyDate(item, &empty))
	assert.Nil(t, item.PurchaseDate)
}

func TestResolveFreeFormFigure(t *testing.T) {
	fig, err := resolveFigure(nil, &FigureRequest{
		Title:  " Baby Yoda ",
		Number: "368",
		Series: []string{"Star Wars", " ", "Star Wars", "Mandalorian"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Baby Yoda", fig.Title)
	assert.Equal(t, []string{"Star Wars", "Mandalorian"}, []string(fig.Series))
	assert.Nil(t, fig.CatalogItemID)

	_, err = resolveFigure(nil, &FigureRequest{Title: "x"})
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestLocalArtworkUpload(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewStorageService(config.AWSConfig{
		MaxArtworkBytes: 1024,
		LocalUploadDir:  dir,
		PublicBaseURL:   "http://localhost:5000/",
	})
	require.NoError(t, err)
	assert.Equal(t, dir, svc.LocalDir())

	res, err := svc.UploadArtwork(bytes.NewReader(pngHeader), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "image/png", res.MimeType)
	assert.True(t, strings.HasPrefix(res.Key, "artwork/user-1/"))
	assert.True(t, strings.HasPrefix(res.URL, "http://localhost:5000/uploads/artwork/user-1/"))

	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(res.Key)))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFile(res.Key))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(res.Key)))
	assert.True(t, os.IsNotExist(err))
}

func TestArtworkValidation(t *testing.T) {
	svc, err := NewStorageService(config.AWSConfig{MaxArtworkBytes: 16, LocalUploadDir: t.TempDir()})
	require.NoError(t, err)

	_, err = svc.UploadArtwork(strings.NewReader("plain text, not an image"), "u")
	assert.ErrorIs(t, err, ErrFileTooLarge)

	_, err = svc.UploadArtwork(strings.NewReader("hello"), "u")
	assert.ErrorIs(t, err, ErrFileType)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}

type mockS3 struct {
	s3iface.S3API
	mock.Mock
}

func (m *mockS3) PutObject(in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
	args := m.Called(in)
	return &s3.PutObjectOutput{}, args.Error(0)
}

func TestS3ArtworkUpload(t *testing.T) {
	client := new(mockS3)
	client.On("PutObject", mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return aws.StringValue(in.Bucket) == "figures" && aws.StringValue(in.ContentType) == "image/png"
	})).Return(nil)

	svc := NewStorageServiceWithClient(config.AWSConfig{
		Region:          "eu-central-1",
		S3Bucket:        "figures",
		MaxArtworkBytes: 1024,
	}, client)

	res, err := svc.UploadArtwork(bytes.NewReader(pngHeader), "u")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.URL, "https://figures.s3.eu-central-1.amazonaws.com/artwork/u/"))
	assert.Empty(t, svc.LocalDir())
	client.AssertExpectations(t)
}

func TestLogoutAllClosesOnlyThatUser(t *testing.T) {
	sessions := session.NewManager(time.Minute)
	defer sessions.Shutdown()
	svc := NewAuthService(nil, &config.Config{}, sessions)

	user, other := uuid.New(), uuid.New()
	sessions.Open("phone", user.String())
	sessions.Open("laptop", user.String())
	sessions.Open("theirs", other.String())

	assert.Equal(t, 2, svc.LogoutAll(user))
	assert.False(t, sessions.Active("phone"))
	assert.False(t, sessions.Active("laptop"))
	assert.True(t, sessions.Active("theirs"))
	assert.Equal(t, 0, svc.LogoutAll(user))
}
