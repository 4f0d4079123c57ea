package delivery

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	url   string
	err   error
	paths []string
}

func (f *fakeHost) Upload(_ context.Context, path string) (string, error) {
	f.paths = append(f.paths, path)
	return f.url, f.err
}

type fakePusher struct {
	err    error
	titles []string
	bodies []string
}

func (f *fakePusher) Notify(_ context.Context, title, body string) error {
	f.titles = append(f.titles, title)
	f.bodies = append(f.bodies, body)
	return f.err
}

func newTestService(host *fakeHost, pusher *fakePusher) *Service {
	s := NewService(host, pusher, "Home", testLogger())
	s.preview = func(string) (string, error) { return "LEHV6nWB2yk8", nil }
	return s
}

func TestDeliverWeekly(t *testing.T) {
	host := &fakeHost{url: "https://img.example.com/w.png"}
	pusher := &fakePusher{}
	s := newTestService(host, pusher)

	res, err := s.DeliverWeekly(context.Background(), "/out/weekly.png", "统计周期: 2025-06-09 ~ 2025-06-15")
	require.NoError(t, err)

	assert.Equal(t, "https://img.example.com/w.png", res.ImageURL)
	assert.Equal(t, "LEHV6nWB2yk8", res.Preview)
	assert.Equal(t, []string{"/out/weekly.png"}, host.paths)
	require.Len(t, pusher.titles, 1)
	assert.Equal(t, "Home Jellyfin 播放周榜", pusher.titles[0])
	assert.Equal(t, "![周榜](https://img.example.com/w.png)\n\n统计周期: 2025-06-09 ~ 2025-06-15", pusher.bodies[0])
}

func TestDeliverAnnual(t *testing.T) {
	host := &fakeHost{url: "https://img.example.com/y.png"}
	pusher := &fakePusher{}
	s := newTestService(host, pusher)

	res, err := s.DeliverAnnual(context.Background(), "/out/annual.png", 2025)
	require.NoError(t, err)

	assert.Equal(t, "https://img.example.com/y.png", res.ImageURL)
	require.Len(t, pusher.titles, 1)
	assert.Equal(t, "Home Jellyfin 2025 年度观影报告", pusher.titles[0])
	assert.Equal(t, "![年度报告](https://img.example.com/y.png)", pusher.bodies[0])
}

func TestDeliver_UploadFailureFallsBackToText(t *testing.T) {
	host := &fakeHost{err: errors.New("boom")}
	pusher := &fakePusher{}
	s := newTestService(host, pusher)

	res, err := s.DeliverWeekly(context.Background(), "/out/weekly.png", "digest")
	require.NoError(t, err)
	assert.Empty(t, res.ImageURL)
	assert.Empty(t, res.Preview)
	require.Len(t, pusher.bodies, 1)
	assert.Equal(t, "digest", pusher.bodies[0], "push carries the bare digest")
}

func TestDeliverAnnual_UploadFailureHasNoFallback(t *testing.T) {
	host := &fakeHost{err: errors.New("boom")}
	pusher := &fakePusher{}
	s := newTestService(host, pusher)

	_, err := s.DeliverAnnual(context.Background(), "/out/annual.png", 2025)
	require.Error(t, err)
	assert.Empty(t, pusher.titles, "nothing to push without a hosted image")
}

func TestDeliver_NotifyFailure(t *testing.T) {
	host := &fakeHost{url: "https://img.example.com/w.png"}
	pusher := &fakePusher{err: errors.New("push down")}
	s := newTestService(host, pusher)

	_, err := s.DeliverWeekly(context.Background(), "/out/weekly.png", "digest")
	assert.Error(t, err)
}

func TestDeliver_PreviewFailureIsNotFatal(t *testing.T) {
	host := &fakeHost{url: "https://img.example.com/w.png"}
	pusher := &fakePusher{}
	s := NewService(host, pusher, "Home", testLogger())
	s.preview = func(string) (string, error) { return "", errors.New("undecodable") }

	res, err := s.DeliverWeekly(context.Background(), "/out/weekly.png", "digest")
	require.NoError(t, err)
	assert.Empty(t, res.Preview)
	assert.Len(t, pusher.titles, 1)
}
