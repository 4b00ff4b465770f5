package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/boardcreator/pkg/storage"
)

func newTestServer(t *testing.T, kv storage.Store) *httptest.Server {
	t.Helper()
	s := New(kv, log.New(io.Discard))
	s.now = func() time.Time { return time.UnixMilli(1000) }
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

// do sends a request and decodes a JSON response into out when non-nil.
func do(t *testing.T, method, url, body string, out any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode: %v", method, url, err)
		}
	}
	return resp
}

func createWorkspace(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	var created map[string]string
	resp := do(t, http.MethodPost, ts.URL+"/workspaces", "", &created)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	if _, err := uuid.Parse(created["id"]); err != nil {
		t.Fatalf("id %q is not a UUID", created["id"])
	}
	return ts.URL + "/workspaces/" + created["id"]
}

func TestCreateAndSummary(t *testing.T) {
	ts := newTestServer(t, storage.NewMemoryStore())
	ws := createWorkspace(t, ts)

	var sum summary
	resp := do(t, http.MethodGet, ws, "", &sum)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if sum.FileName != "Level0" || sum.Board.Width != 30 || sum.Board.Height != 20 || sum.Board.TileSize != 24 {
		t.Errorf("summary = %+v", sum)
	}
	if !sum.ShapeExport {
		t.Error("shape export should be enabled for a named project")
	}
}

func TestPaintAndShapes(t *testing.T) {
	ts := newTestServer(t, storage.NewMemoryStore())
	ws := createWorkspace(t, ts)

	steps := []struct {
		body string
		want string
	}{
		{`{"mode":"Board","x":2,"y":3}`, "added"},
		{`{"mode":"Board","x":3,"y":3}`, "added"},
		{`{"mode":"Colour","x":0,"y":0,"index":1,"color":"#ff0000"}`, "added"},
		{`{"mode":"Colour","x":1,"y":1,"index":1,"color":"#ff0000"}`, "added"},
		{`{"mode":"Colour","x":5,"y":5,"index":2,"color":"#00ff00"}`, "added"},
		{`{"mode":"Colour","x":5,"y":5,"index":2,"color":"#00ff00"}`, "removed"},
	}
	for _, st := range steps {
		var res map[string]string
		resp := do(t, http.MethodPost, ws+"/paint", st.body, &res)
		if resp.StatusCode != http.StatusOK || res["result"] != st.want {
			t.Fatalf("paint %s = %d %v, want %s", st.body, resp.StatusCode, res, st.want)
		}
	}

	resp, err := http.Get(ws + "/shapes")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get("Content-Disposition"); got != `attachment; filename="Level0.json"` {
		t.Errorf("Content-Disposition = %q", got)
	}
	var out struct {
		Board struct {
			Position struct {
				XIndex int `json:"xIndex"`
				YIndex int `json:"yIndex"`
			} `json:"position"`
			Form json.RawMessage `json:"form"`
		} `json:"board"`
		TileGroups []struct {
			Form json.RawMessage `json:"form"`
		} `json:"tileGroups"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Board.Position.XIndex != 2 || out.Board.Position.YIndex != 3 {
		t.Errorf("position = %+v", out.Board.Position)
	}
	if compact(out.Board.Form) != `[[1,1]]` {
		t.Errorf("board form = %s", out.Board.Form)
	}
	if len(out.TileGroups) != 1 || compact(out.TileGroups[0].Form) != `[["#ff0000",0],[0,"#ff0000"]]` {
		t.Errorf("tile groups = %+v", out.TileGroups)
	}
}

func compact(raw json.RawMessage) string {
	var v any
	_ = json.Unmarshal(raw, &v)
	b, _ := json.Marshal(v)
	return string(b)
}

func TestErrors(t *testing.T) {
	ts := newTestServer(t, storage.NewMemoryStore())
	ws := createWorkspace(t, ts)

	tests := []struct {
		name   string
		method string
		url    string
		body   string
		status int
		code   string
	}{
		{"unknown workspace", http.MethodGet, ts.URL + "/workspaces/" + uuid.NewString(), "", http.StatusNotFound, "NOT_FOUND"},
		{"malformed id", http.MethodGet, ts.URL + "/workspaces/nope", "", http.StatusBadRequest, "INVALID_INPUT"},
		{"bad mode", http.MethodPost, ws + "/paint", `{"mode":"Eraser","x":1,"y":1}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"negative group", http.MethodPost, ws + "/paint", `{"mode":"Colour","x":1,"y":1,"index":-2}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad body", http.MethodPut, ws + "/board", `{"width":`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad board", http.MethodPut, ws + "/board", `{"width":0,"height":1,"tileSize":1}`, http.StatusBadRequest, "INVALID_BOARD"},
		{"missing name", http.MethodPut, ws + "/name", `{}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad project", http.MethodPut, ws + "/project", `{"board":{"width":1,"height":1,"tileSize":1}}`, http.StatusBadRequest, "INVALID_PROJECT_FILE"},
		{"absent color", http.MethodDelete, ws + "/palette/%23123456", "", http.StatusNotFound, "NOT_FOUND"},
		{"empty color", http.MethodPost, ws + "/palette", `{}`, http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body errorBody
			resp := do(t, tt.method, tt.url, tt.body, &body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if string(body.Code) != tt.code {
				t.Errorf("code = %s (%s), want %s", body.Code, body.Error, tt.code)
			}
		})
	}
}

func TestShapesDisabledWithoutName(t *testing.T) {
	ts := newTestServer(t, storage.NewMemoryStore())
	ws := createWorkspace(t, ts)

	do(t, http.MethodPut, ws+"/name", `{"fileName":""}`, nil)
	var body errorBody
	resp := do(t, http.MethodGet, ws+"/shapes", "", &body)
	if resp.StatusCode != http.StatusBadRequest || body.Code != "INVALID_FILE_NAME" {
		t.Errorf("shapes without a name = %d %s", resp.StatusCode, body.Code)
	}
}

func TestShapesRejectOversizedBoard(t *testing.T) {
	ts := newTestServer(t, storage.NewMemoryStore())
	ws := createWorkspace(t, ts)

	for _, body := range []string{
		`{"mode":"Board","x":0,"y":0}`,
		`{"mode":"Board","x":9223372036854775807,"y":0}`,
	} {
		if resp := do(t, http.MethodPost, ws+"/paint", body, nil); resp.StatusCode != http.StatusOK {
			t.Fatalf("paint %s = %d", body, resp.StatusCode)
		}
	}

	var body errorBody
	resp := do(t, http.MethodGet, ws+"/shapes", "", &body)
	if resp.StatusCode != http.StatusBadRequest || body.Code != "INVALID_INPUT" {
		t.Errorf("oversized shapes = %d %s", resp.StatusCode, body.Code)
	}

	// The workspace keeps serving after the rejected export.
	var sum summary
	if resp := do(t, http.MethodGet, ws, "", &sum); resp.StatusCode != http.StatusOK || sum.BoardTiles != 2 {
		t.Errorf("summary after rejected export = %d, %d tiles", resp.StatusCode, sum.BoardTiles)
	}
}

func TestProjectExportImport(t *testing.T) {
	ts := newTestServer(t, storage.NewMemoryStore())
	src := createWorkspace(t, ts)

	do(t, http.MethodPut, src+"/name", `{"fileName":"Level5"}`, nil)
	do(t, http.MethodPost, src+"/paint", `{"mode":"Board","x":1,"y":1}`, nil)
	do(t, http.MethodPost, src+"/palette", `{"r":300,"g":0,"b":-5}`, nil)

	resp, err := http.Get(src + "/project")
	if err != nil {
		t.Fatal(err)
	}
	data, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if got := resp.Header.Get("Content-Disposition"); got != `attachment; filename="Level5_1000.boardcreator"` {
		t.Errorf("Content-Disposition = %q", got)
	}

	dst := createWorkspace(t, ts)
	var sum summary
	resp = do(t, http.MethodPut, dst+"/project", string(data), &sum)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("import status = %d", resp.StatusCode)
	}
	if sum.FileName != "Level5" || sum.BoardTiles != 1 {
		t.Errorf("imported summary = %+v", sum)
	}
	if len(sum.Palette) != 1 || sum.Palette[0] != "#ff0000" {
		t.Errorf("palette = %v, want [#ff0000]", sum.Palette)
	}
}

func TestPaletteEndpoints(t *testing.T) {
	ts := newTestServer(t, storage.NewMemoryStore())
	ws := createWorkspace(t, ts)

	var colors map[string][]string
	if resp := do(t, http.MethodPost, ws+"/palette", `{"color":"#abcdef"}`, &colors); resp.StatusCode != http.StatusCreated {
		t.Errorf("add status = %d", resp.StatusCode)
	}
	if resp := do(t, http.MethodPost, ws+"/palette", `{"color":"#abcdef"}`, &colors); resp.StatusCode != http.StatusOK {
		t.Errorf("duplicate add status = %d", resp.StatusCode)
	}
	do(t, http.MethodGet, ws+"/palette", "", &colors)
	if len(colors["colors"]) != 1 {
		t.Errorf("colors = %v", colors)
	}
	if resp := do(t, http.MethodDelete, ws+"/palette/%23abcdef", "", &colors); resp.StatusCode != http.StatusOK {
		t.Errorf("remove status = %d", resp.StatusCode)
	}
	if len(colors["colors"]) != 0 {
		t.Errorf("colors after remove = %v", colors)
	}
}

func TestClearWorkspace(t *testing.T) {
	ts := newTestServer(t, storage.NewMemoryStore())
	ws := createWorkspace(t, ts)
	do(t, http.MethodPost, ws+"/paint", `{"mode":"Board","x":1,"y":1}`, nil)

	var sum summary
	do(t, http.MethodDelete, ws, "", &sum)
	if sum.BoardTiles != 0 || sum.FileName != "Level0" {
		t.Errorf("summary after clear = %+v", sum)
	}
}

func TestWorkspacesSurviveRestart(t *testing.T) {
	kv := storage.NewMemoryStore()
	first := newTestServer(t, kv)
	ws := createWorkspace(t, first)
	do(t, http.MethodPut, ws+"/name", `{"fileName":"Kept"}`, nil)

	second := newTestServer(t, kv)
	url := second.URL + ws[len(first.URL):]
	var sum summary
	if resp := do(t, http.MethodGet, url, "", &sum); resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if sum.FileName != "Kept" {
		t.Errorf("FileName = %q, want Kept", sum.FileName)
	}
}

func TestWorkspacesAreIsolated(t *testing.T) {
	ts := newTestServer(t, storage.NewMemoryStore())
	a := createWorkspace(t, ts)
	b := createWorkspace(t, ts)
	do(t, http.MethodPost, a+"/paint", `{"mode":"Board","x":0,"y":0}`, nil)

	var sum summary
	do(t, http.MethodGet, b, "", &sum)
	if sum.BoardTiles != 0 {
		t.Errorf("workspace b has %d board tiles", sum.BoardTiles)
	}
}
