package widget

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/habits"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/metrics"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/models"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/mood"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/prefs"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/water"
)

var now = time.Date(2024, 3, 10, 9, 41, 0, 0, time.UTC)

func clock() time.Time { return now }

type fixture struct {
	store  prefs.Store
	habits *habits.Tracker
	water  *water.Tracker
	moods  *mood.Journal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := prefs.NewMemory()
	return &fixture{
		store:  store,
		habits: habits.New(store, clock),
		water:  water.New(store),
		moods:  mood.New(store, clock, time.UTC),
	}
}

func (f *fixture) sources() Sources {
	return Sources{Habits: f.habits, Water: f.water, Moods: f.moods}
}

type recordingSurface struct {
	name   string
	pushed []Summary
	err    error
}

func (r *recordingSurface) Name() string { return r.name }

func (r *recordingSurface) Push(_ context.Context, s Summary) error {
	if r.err != nil {
		return r.err
	}
	r.pushed = append(r.pushed, s)
	return nil
}

type fakePublisher struct {
	subject string
	data    []byte
	flushed bool
}

func (p *fakePublisher) Publish(subject string, data []byte) error {
	p.subject = subject
	p.data = data
	return nil
}

func (p *fakePublisher) Flush() error {
	p.flushed = true
	return nil
}

func TestBuildEmpty(t *testing.T) {
	f := newFixture(t)
	s, err := Build(f.sources(), now)
	require.NoError(t, err)
	assert.Equal(t, Summary{
		HabitsText:  "0/0",
		WaterText:   "0/8",
		MoodEmoji:   "😐",
		LastUpdated: "Updated: 09:41",
	}, s)
}

func TestBuild(t *testing.T) {
	f := newFixture(t)
	h, err := f.habits.Add("Read", 1, "", models.CategoryCount)
	require.NoError(t, err)
	_, err = f.habits.Add("Walk", 3, "", models.CategoryCount)
	require.NoError(t, err)
	require.NoError(t, f.habits.Increment(h.ID))
	_, _, err = f.water.AddGlass()
	require.NoError(t, err)
	_, err = f.moods.Add("😊", "Happy", "")
	require.NoError(t, err)

	s, err := Build(f.sources(), now)
	require.NoError(t, err)
	assert.Equal(t, "1/2", s.HabitsText)
	assert.Equal(t, "1/8", s.WaterText)
	assert.Equal(t, "😊", s.MoodEmoji)
}

func TestRefreshContinuesPastFailingSurface(t *testing.T) {
	f := newFixture(t)
	bad := &recordingSurface{name: "file", err: errors.New("disk full")}
	good := &recordingSurface{name: "nats"}
	before := testutil.ToFloat64(metrics.WidgetRefreshes.WithLabelValues("nats", "ok"))

	_, err := NewRefresher(f.sources(), clock, bad, good).Refresh(context.Background())
	require.Error(t, err)
	assert.Len(t, good.pushed, 1)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.WidgetRefreshes.WithLabelValues("nats", "ok")))
}

func TestFileSurface(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "widget.json")
	surface, err := NewFileSurface(path)
	require.NoError(t, err)

	want := Summary{HabitsText: "1/2", WaterText: "3/8", MoodEmoji: "😊", LastUpdated: "Updated: 09:41"}
	require.NoError(t, surface.Push(context.Background(), want))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got Summary
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, want, got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestNATSSurface(t *testing.T) {
	pub := &fakePublisher{}
	surface := &NATSSurface{conn: pub, subject: "wellnest.widget.summary"}

	require.NoError(t, surface.Push(context.Background(), Summary{WaterText: "2/8"}))
	assert.Equal(t, "wellnest.widget.summary", pub.subject)
	assert.True(t, pub.flushed)
	assert.Contains(t, string(pub.data), `"waterText":"2/8"`)
}

func TestServerSummary(t *testing.T) {
	f := newFixture(t)
	srv := NewServer(NewRefresher(f.sources(), clock), f.water)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/summary", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got Summary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "0/8", got.WaterText)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/summary", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServerAddWater(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.water.SetGoal(1))
	surface := &recordingSurface{name: "file"}
	srv := NewServer(NewRefresher(f.sources(), clock, surface), f.water)
	before := testutil.ToFloat64(metrics.GlassesAdded)

	post := func() WaterResponse {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/water", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		var resp WaterResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		return resp
	}

	resp := post()
	assert.True(t, resp.Added)
	assert.Equal(t, "✅ Water added from widget!", resp.Message)
	assert.Equal(t, "1/1", resp.Summary.WaterText)
	assert.Len(t, surface.pushed, 1)

	resp = post()
	assert.False(t, resp.Added)
	assert.Equal(t, "🎉 You've reached your water goal!", resp.Message)
	assert.Len(t, surface.pushed, 1, "no refresh when nothing changed")

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.GlassesAdded))
}

func TestServerMetrics(t *testing.T) {
	f := newFixture(t)
	srv := NewServer(NewRefresher(f.sources(), clock), f.water)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "wellnest_water_glasses_added_total"))
}
