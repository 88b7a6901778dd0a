package metrics

import (
	"aimrange/internal/game"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder_RecordShot(t *testing.T) {
	r := New()
	r.RecordShot(game.Shot{Result: game.ResultHit, Points: 10, Reaction: 300 * time.Millisecond})
	r.RecordShot(game.Shot{Result: game.ResultHit, Points: 20, Reaction: time.Second})
	r.RecordShot(game.Shot{Result: game.ResultMiss})

	if got := testutil.ToFloat64(r.shots.WithLabelValues("hit")); got != 2 {
		t.Errorf("hit shots = %f, want 2", got)
	}
	if got := testutil.ToFloat64(r.shots.WithLabelValues("miss")); got != 1 {
		t.Errorf("miss shots = %f, want 1", got)
	}
	if got := testutil.ToFloat64(r.points); got != 30 {
		t.Errorf("points = %f, want 30", got)
	}
	if got := testutil.CollectAndCount(r.reaction); got != 1 {
		t.Errorf("reaction histogram series = %d, want 1", got)
	}
}

func TestRecorder_BulletTimeGauge(t *testing.T) {
	r := New()
	r.RecordBulletTime("a", true)
	r.RecordBulletTime("a", true) // rearm
	r.RecordBulletTime("b", true)

	if got := testutil.ToFloat64(r.bulletTimes); got != 3 {
		t.Errorf("triggers = %f, want 3", got)
	}
	if got := testutil.ToFloat64(r.bulletActive); got != 2 {
		t.Errorf("active = %f, want 2", got)
	}

	r.RecordBulletTime("a", false)
	r.RecordBulletTime("a", false)
	if got := testutil.ToFloat64(r.bulletActive); got != 1 {
		t.Errorf("active = %f, want 1", got)
	}
}

func TestRecorder_Sessions(t *testing.T) {
	r := New()
	r.SessionOpened("a")
	r.SessionOpened("b")
	r.RecordBulletTime("b", true)
	r.SessionClosed("b")

	if got := testutil.ToFloat64(r.sessions); got != 1 {
		t.Errorf("sessions = %f, want 1", got)
	}
	if got := testutil.ToFloat64(r.bulletActive); got != 0 {
		t.Errorf("active = %f, want 0 after the slowed session closed", got)
	}
}

func TestRecorder_Waves(t *testing.T) {
	r := New()
	r.RecordWave("a", 1, 2)
	r.RecordWave("a", 2, 4)
	if got := testutil.ToFloat64(r.waves); got != 2 {
		t.Errorf("waves = %f, want 2", got)
	}
}

func TestRecorder_Handler(t *testing.T) {
	r := New()
	r.RecordShot(game.Shot{Result: game.ResultMiss})

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), `aimrange_shots_total{result="miss"} 1`) {
		t.Errorf("exposition missing miss counter:\n%s", body)
	}
}
