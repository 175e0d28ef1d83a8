package handler

import (
	"context"
	"strings"
	"testing"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/stretchr/testify/assert"

	"github.com/adityachauhan/aira-apiserver/internal/domain"
	"github.com/adityachauhan/aira-apiserver/internal/domain/entity"
)

// fakeSearchUsecase returns a canned result or error.
type fakeSearchUsecase struct {
	gotQuery string
	result   *entity.SearchResult
	err      error
}

func (u *fakeSearchUsecase) Search(ctx context.Context, query string) (*entity.SearchResult, error) {
	u.gotQuery = query
	if u.err != nil {
		return nil, u.err
	}
	return u.result, nil
}

func searchEngine(uc domain.SearchUsecase) *server.Hertz {
	h := server.Default()
	h.POST("/v1/web-search", NewSearchHandler(uc, testLogger()).Search)
	return h
}

func TestSearchReturnsResult(t *testing.T) {
	uc := &fakeSearchUsecase{result: &entity.SearchResult{
		Content:   "Bitcoin trades at $100k.",
		Citations: []string{"https://example.com"},
	}}
	h := searchEngine(uc)

	w := ut.PerformRequest(h.Engine, "POST", "/v1/web-search",
		&ut.Body{Body: strings.NewReader(`{"query":"bitcoin price"}`), Len: -1},
		ut.Header{Key: "Content-Type", Value: "application/json"},
	)
	resp := w.Result()

	assert.Equal(t, 200, resp.StatusCode())
	assert.JSONEq(t,
		`{"content":"Bitcoin trades at $100k.","citations":["https://example.com"]}`,
		string(resp.Body()),
	)
	assert.Equal(t, "bitcoin price", uc.gotQuery)
}

func TestSearchEmptyQuery(t *testing.T) {
	h := searchEngine(&fakeSearchUsecase{err: domain.NewInvalidInputError("query is required")})

	w := ut.PerformRequest(h.Engine, "POST", "/v1/web-search",
		&ut.Body{Body: strings.NewReader(`{"query":""}`), Len: -1},
		ut.Header{Key: "Content-Type", Value: "application/json"},
	)
	resp := w.Result()

	assert.Equal(t, 400, resp.StatusCode())
	assert.JSONEq(t, `{"error":"query is required"}`, string(resp.Body()))
}

func TestSearchNotConfigured(t *testing.T) {
	h := searchEngine(&fakeSearchUsecase{err: domain.NewNotConfiguredError("Search API")})

	w := ut.PerformRequest(h.Engine, "POST", "/v1/web-search",
		&ut.Body{Body: strings.NewReader(`{"query":"anything"}`), Len: -1},
		ut.Header{Key: "Content-Type", Value: "application/json"},
	)
	resp := w.Result()

	assert.Equal(t, 500, resp.StatusCode())
	assert.JSONEq(t, `{"error":"Search API is not configured"}`, string(resp.Body()))
}

func TestSearchInvalidJSON(t *testing.T) {
	h := searchEngine(&fakeSearchUsecase{})

	w := ut.PerformRequest(h.Engine, "POST", "/v1/web-search",
		&ut.Body{Body: strings.NewReader(`not json`), Len: -1},
		ut.Header{Key: "Content-Type", Value: "application/json"},
	)
	resp := w.Result()

	assert.Equal(t, 400, resp.StatusCode())
	assert.JSONEq(t, `{"error":"invalid request body"}`, string(resp.Body()))
}
