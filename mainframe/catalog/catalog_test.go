package catalog

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/geekhub/mainframe/mainframe/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Embedded(t *testing.T) {
	c, err := Load(context.Background(), EmbeddedSource{})
	require.NoError(t, err)

	require.NotEmpty(t, c.Levels)
	assert.Equal(t, 1, c.Levels[0].Level)
	assert.Zero(t, c.Levels[0].Exp)

	var sentinel *models.Card
	for _, card := range c.Cards {
		if card.IsSentinel() {
			sentinel = card
		}
	}
	require.NotNil(t, sentinel, "the try again entry is part of the catalog")
	assert.True(t, sentinel.Pullable())

	require.NotEmpty(t, c.Achievements)
	for _, a := range c.Achievements {
		assert.NotEmpty(t, a.StatKey)
	}
}

func writeCatalog(t *testing.T, dir, levels, achievements, cards string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, LevelsFile), []byte(levels), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, AchievementsFile), []byte(achievements), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, CardsFile), []byte(cards), 0o644))
}

const (
	validLevels       = "levels:\n  - { level: 1, title: Passenger, exp: 0 }\n"
	validAchievements = "achievements:\n  - { sysname: regular, name: Regular, tier: 1, stat_key: checkin_count, threshold: 1 }\n"
	validCards        = "cards:\n  - { id: 1, catalog_no: ST-01, name: A, sysname: a }\n  - { id: 2, catalog_no: SP-00, name: B, sysname: b, premium: true }\n"
)

func TestLoad_Dir(t *testing.T) {
	tests := []struct {
		name         string
		levels       string
		achievements string
		cards        string
		wantErr      string
	}{
		{name: "valid", levels: validLevels, achievements: validAchievements, cards: validCards},
		{name: "empty levels", levels: "levels: []\n", achievements: validAchievements, cards: validCards, wantErr: "level table is empty"},
		{
			name:         "missing premium starter",
			levels:       validLevels,
			achievements: validAchievements,
			cards:        "cards:\n  - { id: 1, catalog_no: ST-01, name: A, sysname: a }\n",
			wantErr:      "starter card 2 is missing",
		},
		{
			name:         "duplicate sysname",
			levels:       validLevels,
			achievements: validAchievements,
			cards:        validCards + "  - { id: 3, catalog_no: CM-01, name: C, sysname: a, weight: 1 }\n",
			wantErr:      "sysname a is listed twice",
		},
		{
			name:         "duplicate achievement tier",
			levels:       validLevels,
			achievements: validAchievements + "  - { sysname: regular, name: Regular, tier: 1, stat_key: checkin_count, threshold: 2 }\n",
			cards:        validCards,
			wantErr:      "regular/1 is listed twice",
		},
		{name: "malformed yaml", levels: "levels: [", achievements: validAchievements, cards: validCards, wantErr: "failed to decode levels.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeCatalog(t, dir, tt.levels, tt.achievements, tt.cards)

			c, err := Load(context.Background(), DirSource(dir))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, c.Cards, 2)
			assert.True(t, c.Cards[1].IsPremium)
		})
	}
}

func TestLoad_DirMissingFile(t *testing.T) {
	_, err := Load(context.Background(), DirSource(t.TempDir()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

type fakeBucket struct {
	objects map[string]string
	keys    []string
}

func (f *fakeBucket) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(in.Key)
	f.keys = append(f.keys, key)
	body, ok := f.objects[key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestLoad_Spaces(t *testing.T) {
	bucket := &fakeBucket{objects: map[string]string{
		"mainframe/catalog/" + LevelsFile:       validLevels,
		"mainframe/catalog/" + AchievementsFile: validAchievements,
		"mainframe/catalog/" + CardsFile:        validCards,
	}}
	src := newSpacesSource(bucket, "geekhub", "/mainframe/catalog/")

	c, err := Load(context.Background(), src)
	require.NoError(t, err)
	assert.Len(t, c.Levels, 1)
	assert.Equal(t, []string{
		"mainframe/catalog/" + LevelsFile,
		"mainframe/catalog/" + AchievementsFile,
		"mainframe/catalog/" + CardsFile,
	}, bucket.keys)

	delete(bucket.objects, "mainframe/catalog/"+CardsFile)
	_, err = Load(context.Background(), src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket geekhub")
}
