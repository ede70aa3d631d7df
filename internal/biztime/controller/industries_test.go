package controller

import (
	"context"
	"net/http"
	"path/filepath"
	"strconv"
	"testing"

	e "github.com/gartstein/biztime/internal/biztime/errors"
	"github.com/gartstein/biztime/internal/biztime/events"
	"github.com/gartstein/biztime/internal/biztime/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestIndustryService_List(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	newCompanyFixture(t, repo, "fbk", "Zuckerberg")
	producer := &MockProducer{}
	svc := NewIndustryService(repo, producer, zaptest.NewLogger(t))

	industries, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, industries)

	_, err = svc.Create(ctx, &models.Industry{Code: "tech", Industry: "Technology"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &models.Industry{Code: "retail", Industry: "Retail"})
	require.NoError(t, err)
	association, err := svc.Associate(ctx, &models.Association{IndCode: "tech", CompCode: "fbk"})
	require.NoError(t, err)
	assert.Equal(t, &models.Association{CompCode: "fbk", IndCode: "tech"}, association)

	industries, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"tech": {"fbk"}, "retail": {}}, industries)
	assert.NotNil(t, industries["retail"], "empty industries map to an empty list")

	assert.Equal(t, []events.EventType{events.IndustryCreated, events.IndustryCreated, events.IndustryAssociated}, producer.types())
}

func TestIndustryService_ListUnknownIndustryIsFault(t *testing.T) {
	// foreign keys off so the join table can reference a missing industry
	path := filepath.Join(t.TempDir(), "biztime.db") + "?_foreign_keys=0"
	repo := setupRepoWithPath(t, path)
	ctx := context.Background()
	newCompanyFixture(t, repo, "fbk", "Zuckerberg")
	require.NoError(t, repo.CreateAssociation(ctx, &models.Association{CompCode: "fbk", IndCode: "ghost"}))

	svc := NewIndustryService(repo, &MockProducer{}, zaptest.NewLogger(t))
	_, err := svc.List(ctx)
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, e.StatusOf(err))
	assert.Contains(t, err.Error(), "unknown industry 'ghost'")
}

func TestIndustryService_CreateErrors(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	producer := &MockProducer{}
	svc := NewIndustryService(repo, producer, zaptest.NewLogger(t))

	_, err := svc.Create(ctx, &models.Industry{Code: "tech", Industry: "Technology"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &models.Industry{Code: "tech", Industry: "Tech again"})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, e.StatusOf(err))

	_, err = svc.Associate(ctx, &models.Association{CompCode: "ghost", IndCode: "tech"})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, e.StatusOf(err))

	assert.Equal(t, []events.EventType{events.IndustryCreated}, producer.types())
}
