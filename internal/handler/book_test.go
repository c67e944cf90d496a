package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mini4/book-catalog/internal/config"
	"github.com/mini4/book-catalog/internal/repository"
)

func TestBookReqValidate(t *testing.T) {
	neg := -1
	zero := 0

	cases := []struct {
		name string
		req  bookReq
		want string
	}{
		{"ok", bookReq{Title: "t", PublishedDate: "2024-01-02"}, ""},
		{"title only", bookReq{Title: "t"}, ""},
		{"trims title", bookReq{Title: "  t  "}, ""},
		{"missing title", bookReq{}, "title is required"},
		{"blank title", bookReq{Title: "   "}, "title is required"},
		{"bad date", bookReq{Title: "t", PublishedDate: "02-01-2024"}, "publishedDate must be YYYY-MM-DD"},
		{"negative price", bookReq{Title: "t", Price: &neg}, "price must not be negative"},
		{"zero price", bookReq{Title: "t", Price: &zero}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.req.validate())
		})
	}
}

var bookQueryColumns = []string{
	"id", "user_id", "title", "author", "publisher", "published_date",
	"content", "price", "category", "image_url", "created_at", "updated_at", "deleted_at", "name",
}

func newBookFixture(t *testing.T) (*BookHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewBookHandler(config.Config{Env: "test"}, repository.NewBookRepo(db)), mock
}

func TestBookGet(t *testing.T) {
	h, mock := newBookFixture(t)
	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM book_table b JOIN user_table u").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows(bookQueryColumns).
			AddRow(7, 1, "Effective Go", "Gopher", "Acme", "2024-01-02",
				"", nil, "tech", "", now, now, nil, "alice"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"Effective Go"`)
	assert.Contains(t, rec.Body.String(), `"ownerName":"alice"`)
}

func TestBookGet_NotFound(t *testing.T) {
	h, mock := newBookFixture(t)
	mock.ExpectQuery("SELECT (.+) FROM book_table b JOIN user_table u").
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows(bookQueryColumns))

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("99")

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookGet_BadID(t *testing.T) {
	h, _ := newBookFixture(t)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookList_Empty(t *testing.T) {
	h, mock := newBookFixture(t)
	mock.ExpectQuery("SELECT (.+) FROM book_table b JOIN user_table u").
		WillReturnRows(sqlmock.NewRows(bookQueryColumns))

	e := echo.New()
	rec := httptest.NewRecorder()
	require.NoError(t, h.List(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"books":[]`)
}
