//go:build integration
// +build integration

package integration

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/config"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/db"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/model"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/server"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/view"
	"gorm.io/gorm"
)

var (
	testDB     *gorm.DB
	testRouter *gin.Engine
)

func TestMain(m *testing.M) {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	if cfg.DBDriver != config.DriverPostgres {
		panic("integration tests need CATALOG_DB_DRIVER=postgres")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	conn, err := db.Connect(ctx, cfg, zerolog.Nop())
	cancel()
	if err != nil {
		panic("failed to connect to test database: " + err.Error())
	}
	testDB = conn

	if err := db.Migrate(conn); err != nil {
		panic("failed to migrate: " + err.Error())
	}

	gin.SetMode(gin.TestMode)
	testRouter = server.NewRouter(server.Deps{
		Authors:   repository.NewAuthorRepository(conn),
		Books:     repository.NewGormBookRepository(conn),
		Ping:      func(ctx context.Context) error { return db.Ping(ctx, conn) },
		Views:     view.MustNew(),
		Log:       zerolog.Nop(),
		Version:   "integration",
		StartTime: time.Now(),
	})

	os.Exit(m.Run())
}

func resetDB(t *testing.T) {
	t.Helper()
	sqlDB, err := testDB.DB()
	if err != nil {
		t.Fatalf("get sql.DB failed: %v", err)
	}
	_, err = sqlDB.Exec("TRUNCATE TABLE books, authors RESTART IDENTITY CASCADE;")
	if err != nil {
		t.Fatalf("truncate failed: %v", err)
	}
}

// newClient does not follow redirects so Location headers can be asserted.
func newClient(srv *httptest.Server) *http.Client {
	client := srv.Client()
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return client
}

func createAuthor(t *testing.T, client *http.Client, baseURL string, form url.Values) string {
	t.Helper()

	resp, err := client.PostForm(baseURL+"/catalog/author/create", form)
	if err != nil {
		t.Fatalf("failed to create author: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302 when creating author, got %d", resp.StatusCode)
	}

	loc := resp.Header.Get("Location")
	id := strings.TrimPrefix(loc, "/catalog/author/")
	if id == loc || id == "" {
		t.Fatalf("unexpected redirect location %q", loc)
	}
	return id
}

func seedBook(t *testing.T, authorID, title string) {
	t.Helper()

	var author model.Author
	if err := testDB.First(&author, "id = ?", authorID).Error; err != nil {
		t.Fatalf("failed to load author: %v", err)
	}
	book := model.Book{Title: title, AuthorID: author.ID, Summary: title + " summary"}
	if err := testDB.Create(&book).Error; err != nil {
		t.Fatalf("failed to seed book: %v", err)
	}
}

func TestCreateAuthorAndFetchIt_Integration(t *testing.T) {
	resetDB(t)

	srv := httptest.NewServer(testRouter)
	defer srv.Close()
	client := newClient(srv)

	id := createAuthor(t, client, srv.URL, url.Values{
		"first_name":    {"Ursula"},
		"family_name":   {"LeGuin"},
		"date_of_birth": {"1929-10-21"},
	})
	seedBook(t, id, "The Dispossessed")

	resp, err := client.Get(srv.URL + "/api/authors/" + id)
	if err != nil {
		t.Fatalf("failed to get author: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Data struct {
			FullName    string `json:"full_name"`
			DateOfBirth string `json:"date_of_birth"`
			Books       []struct {
				Title string `json:"title"`
			} `json:"books"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}

	if body.Data.FullName != "LeGuin, Ursula" {
		t.Errorf("expected full name LeGuin, Ursula, got %q", body.Data.FullName)
	}
	if body.Data.DateOfBirth != "1929-10-21" {
		t.Errorf("expected date_of_birth 1929-10-21, got %q", body.Data.DateOfBirth)
	}
	if len(body.Data.Books) != 1 || body.Data.Books[0].Title != "The Dispossessed" {
		t.Errorf("unexpected books: %+v", body.Data.Books)
	}
}

func TestDeleteAuthor_Integration(t *testing.T) {
	resetDB(t)

	srv := httptest.NewServer(testRouter)
	defer srv.Close()
	client := newClient(srv)

	t.Run("blocked_by_books", func(t *testing.T) {
		id := createAuthor(t, client, srv.URL, url.Values{"first_name": {"Isaac"}, "family_name": {"Asimov"}})
		seedBook(t, id, "Foundation")

		resp, err := client.PostForm(srv.URL+"/catalog/author/"+id+"/delete", url.Values{"authorid": {id}})
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200 confirmation page, got %d", resp.StatusCode)
		}

		var n int64
		testDB.Model(&model.Author{}).Where("id = ?", id).Count(&n)
		if n != 1 {
			t.Fatalf("expected author to be kept")
		}
	})

	t.Run("no_books", func(t *testing.T) {
		id := createAuthor(t, client, srv.URL, url.Values{"first_name": {"Jim"}, "family_name": {"Jones"}})

		resp, err := client.PostForm(srv.URL+"/catalog/author/"+id+"/delete", url.Values{"authorid": {id}})
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusFound {
			t.Fatalf("expected 302, got %d", resp.StatusCode)
		}

		resp, err = client.Get(srv.URL + "/catalog/author/" + id)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", resp.StatusCode)
		}
	})
}

func TestForeignKeyRestrictsAuthorDelete_Integration(t *testing.T) {
	resetDB(t)

	author := model.Author{FirstName: "Frank", FamilyName: "Herbert"}
	if err := testDB.Create(&author).Error; err != nil {
		t.Fatalf("failed to seed author: %v", err)
	}
	seedBook(t, author.ID.String(), "Dune")

	err := testDB.Delete(&model.Author{}, "id = ?", author.ID).Error
	if !errors.Is(err, gorm.ErrForeignKeyViolated) {
		t.Fatalf("expected foreign key violation, got %v", err)
	}
}

func TestReady_Integration(t *testing.T) {
	srv := httptest.NewServer(testRouter)
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/ready")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
