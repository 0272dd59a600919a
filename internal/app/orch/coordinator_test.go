package orch

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dkeye/voicejoin/internal/app"
	"github.com/dkeye/voicejoin/internal/app/mediactx"
	"github.com/dkeye/voicejoin/internal/app/ui"
	"github.com/dkeye/voicejoin/internal/core"
	"github.com/dkeye/voicejoin/internal/core/mock"
	"github.com/dkeye/voicejoin/internal/domain"
	"github.com/pion/webrtc/v4"
	"go.uber.org/mock/gomock"
)

const waitFor = 2 * time.Second

type fakeContext struct {
	state mediactx.State
	err   error
	calls atomic.Int32
}

func (f *fakeContext) Setup(context.Context, mediactx.Options) (mediactx.State, error) {
	f.calls.Add(1)
	return f.state, f.err
}

type notices struct{ ch chan core.Notice }

func (n *notices) Notify(x core.Notice) { n.ch <- x }

func (n *notices) next(t *testing.T) core.Notice {
	t.Helper()
	select {
	case x := <-n.ch:
		return x
	case <-time.After(waitFor):
		t.Fatal("no notice")
		return core.Notice{}
	}
}

type fixture struct {
	devices *mock.MockDeviceAcquirer
	perms   *mock.MockPermissionGate
	backend *mock.MockRoomBackend
	local   *mock.MockSurface
	remote  *mock.MockSurface
	notes   *notices
	media   *fakeContext
	coord   *Coordinator

	video *core.LocalStream
	audio *core.LocalStream
}

var (
	room1 = domain.Room{ID: "rid-1", Name: "room-1"}
	front = core.CameraDescriptor{DeviceID: "cam-0", Label: "Front", Facing: core.FacingFront}
	alice = &core.Membership{Room: room1, Member: domain.Member{ID: "alice", Name: "member_alice", RoomID: room1.ID}}
	bob   = domain.Member{ID: "bob", Name: "member_bob", RoomID: room1.ID}
)

func localStream(t *testing.T, mime, id string) *core.LocalStream {
	t.Helper()
	track, err := webrtc.NewTrackLocalStaticRTP(webrtc.RTPCodecCapability{MimeType: mime}, id, "voicejoin")
	if err != nil {
		t.Fatal(err)
	}
	return core.NewLocalStream(track)
}

func surface(ctrl *gomock.Controller, name string) *mock.MockSurface {
	s := mock.NewMockSurface(ctrl)
	ready := new(atomic.Bool)
	s.EXPECT().Name().Return(name).AnyTimes()
	s.EXPECT().IsSetup().DoAndReturn(ready.Load).AnyTimes()
	s.EXPECT().Setup().DoAndReturn(func() error { ready.Store(true); return nil }).AnyTimes()
	s.EXPECT().RemoveRenderer(gomock.Any()).AnyTimes()
	return s
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	d := ui.NewDispatcher(16)
	uiCtx, stop := context.WithCancel(context.Background())
	go d.Run(uiCtx)
	t.Cleanup(func() {
		stop()
		<-d.Done()
	})

	f := &fixture{
		devices: mock.NewMockDeviceAcquirer(ctrl),
		perms:   mock.NewMockPermissionGate(ctrl),
		backend: mock.NewMockRoomBackend(ctrl),
		local:   surface(ctrl, "local"),
		remote:  surface(ctrl, "remote"),
		notes:   &notices{ch: make(chan core.Notice, 8)},
		media:   &fakeContext{state: mediactx.Ready},
		video:   localStream(t, webrtc.MimeTypeVP8, "video-1"),
		audio:   localStream(t, webrtc.MimeTypeOpus, "audio-1"),
	}
	f.coord = &Coordinator{
		Context:       f.media,
		Devices:       f.devices,
		Permissions:   f.perms,
		Backend:       f.backend,
		UI:            d,
		Notifier:      f.notes,
		Binder:        app.NewRenderBinder(d),
		LocalSurface:  f.local,
		RemoteSurface: f.remote,
		Policy:        app.SubscribeAll{},
		Settings: Settings{
			RoomName: "room-1",
			Facing:   core.FacingFront,
			Capture:  core.CaptureOptions{Width: 800, Height: 800},
		},
	}
	f.devices.EXPECT().StopCapture().Return(nil).MinTimes(1)
	return f
}

func (f *fixture) grant(camera, mic bool) {
	f.perms.EXPECT().CameraGranted().Return(camera).AnyTimes()
	f.perms.EXPECT().MicrophoneGranted().Return(mic).AnyTimes()
}

func (f *fixture) devicesUp() {
	f.grant(true, true)
	f.devices.EXPECT().ListCameras(gomock.Any(), core.FacingFront).Return([]core.CameraDescriptor{front}, nil)
	f.devices.EXPECT().StartCapture(gomock.Any(), front, core.CaptureOptions{Width: 800, Height: 800}).Return(nil)
	f.devices.EXPECT().CreateVideoStream().Return(f.video, nil)
	f.local.EXPECT().AddRenderer(f.video).Return(nil).Times(1)
	f.devices.EXPECT().StartAudioCapture(gomock.Any()).Return(nil)
	f.devices.EXPECT().CreateAudioStream().Return(f.audio, nil)
}

func (f *fixture) publishes() (video, audio domain.Publication) {
	video = domain.NewPublication(room1.ID, alice.Member, domain.ContentVideo, f.video.ID())
	audio = domain.NewPublication(room1.ID, alice.Member, domain.ContentAudio, f.audio.ID())
	f.backend.EXPECT().Publish(gomock.Any(), alice, domain.ContentVideo, f.video.ID()).Return(video, nil).Times(1)
	f.backend.EXPECT().Publish(gomock.Any(), alice, domain.ContentAudio, f.audio.ID()).Return(audio, nil).Times(1)
	return video, audio
}

func memberName() gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		init, ok := x.(domain.MemberInit)
		return ok && strings.HasPrefix(init.Name, domain.DefaultMemberPrefix)
	})
}

func pubID(id domain.PublicationID) gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		p, ok := x.(domain.Publication)
		return ok && p.ID == id
	})
}

func streamID(id string) gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		s, ok := x.(core.Stream)
		return ok && s.ID() == id
	})
}

func halt(t *testing.T, a *Attempt) {
	t.Helper()
	a.Cancel()
	select {
	case <-a.Done():
	case <-time.After(waitFor):
		t.Fatal("attempt did not stop")
	}
}

func settle(t *testing.T, a *Attempt) (*Result, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()
	return a.Wait(ctx)
}

func TestJoinAndPublish(t *testing.T) {
	f := newFixture(t)
	f.devicesUp()
	f.backend.EXPECT().FindOrCreate(gomock.Any(), domain.RoomName("room-1")).Return(room1, nil)
	f.backend.EXPECT().Join(gomock.Any(), room1, memberName(), gomock.Any()).Return(alice, nil)
	video, audio := f.publishes()
	f.backend.EXPECT().Leave(gomock.Any(), alice).Return(nil)

	a := f.coord.Start(context.Background())
	res, err := settle(t, a)
	if err != nil {
		t.Fatalf("attempt: %v", err)
	}
	if n := f.notes.next(t); n.Kind != core.NoticeJoined || n.Message != "Joined room" {
		t.Fatalf("notice %+v", n)
	}
	if res.Video.ID != video.ID || res.Audio.ID != audio.ID || res.VideoErr != nil || res.AudioErr != nil {
		t.Fatalf("result %+v", res)
	}
	if a.Phase() != app.PhaseJoined {
		t.Fatalf("phase %s", a.Phase())
	}
	local := 0
	for _, p := range a.Session().Registry().Snapshot() {
		if p.Origin == domain.OriginLocal {
			local++
		}
	}
	if local != 2 {
		t.Fatalf("expected two local publications, got %d", local)
	}

	halt(t, a)
	if a.Phase() != app.PhaseClosed {
		t.Fatalf("phase after cancel %s", a.Phase())
	}
	if f.media.calls.Load() != 1 {
		t.Fatalf("context setup calls %d", f.media.calls.Load())
	}
}

func TestEmptyCameraList(t *testing.T) {
	f := newFixture(t)
	f.grant(true, true)
	f.devices.EXPECT().ListCameras(gomock.Any(), core.FacingFront).Return(nil, nil)

	a := f.coord.Start(context.Background())
	_, err := settle(t, a)
	if !errors.Is(err, core.ErrDevice) || !errors.Is(err, core.ErrNoCamera) {
		t.Fatalf("expected device error, got %v", err)
	}
	if n := f.notes.next(t); n.Kind != core.NoticeError {
		t.Fatalf("notice %+v", n)
	}
	<-a.Done()
	if a.Phase() != app.PhaseFailed {
		t.Fatalf("phase %s", a.Phase())
	}
}

func TestJoinFailed(t *testing.T) {
	f := newFixture(t)
	f.devicesUp()
	f.backend.EXPECT().FindOrCreate(gomock.Any(), domain.RoomName("room-1")).Return(room1, nil)
	f.backend.EXPECT().Join(gomock.Any(), room1, gomock.Any(), gomock.Any()).Return(nil, errors.New("refused"))
	f.backend.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	f.backend.EXPECT().Subscribe(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	a := f.coord.Start(context.Background())
	_, err := settle(t, a)
	if !errors.Is(err, core.ErrJoin) {
		t.Fatalf("expected join error, got %v", err)
	}
	if n := f.notes.next(t); n.Kind != core.NoticeJoinFailed || n.Message != "Join failed" {
		t.Fatalf("notice %+v", n)
	}
	<-a.Done()
	select {
	case n := <-f.notes.ch:
		t.Fatalf("unexpected second notice %+v", n)
	default:
	}
}

func TestRemotePublications(t *testing.T) {
	f := newFixture(t)
	f.devicesUp()
	f.backend.EXPECT().FindOrCreate(gomock.Any(), gomock.Any()).Return(room1, nil)

	var ann core.Announcer
	f.backend.EXPECT().Join(gomock.Any(), room1, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Room, _ domain.MemberInit, a core.Announcer) (*core.Membership, error) {
			ann = a
			return alice, nil
		})
	f.publishes()
	f.backend.EXPECT().Leave(gomock.Any(), alice).Return(nil)

	bobVideo := domain.NewPublication(room1.ID, bob, domain.ContentVideo, "bob-cam")
	bobAudio := domain.NewPublication(room1.ID, bob, domain.ContentAudio, "bob-mic")

	attached := make(chan struct{}, 1)
	audioSubscribed := make(chan struct{}, 1)
	f.backend.EXPECT().Subscribe(gomock.Any(), alice, pubID(bobVideo.ID)).
		Return(domain.Subscription{ID: "s-video", PublicationID: bobVideo.ID, Subscriber: "alice"}, nil).Times(1)
	f.backend.EXPECT().Subscribe(gomock.Any(), alice, pubID(bobAudio.ID)).
		DoAndReturn(func(context.Context, *core.Membership, domain.Publication) (domain.Subscription, error) {
			audioSubscribed <- struct{}{}
			return domain.Subscription{ID: "s-audio", PublicationID: bobAudio.ID, Subscriber: "alice"}, nil
		}).Times(1)
	f.remote.EXPECT().AddRenderer(streamID("bob-cam")).
		DoAndReturn(func(core.Stream) error {
			attached <- struct{}{}
			return nil
		}).Times(1)

	a := f.coord.Start(context.Background())
	if _, err := settle(t, a); err != nil {
		t.Fatal(err)
	}
	f.notes.next(t)

	ann.Announce(bobVideo)
	ann.Announce(bobAudio)
	ann.Announce(bobVideo)

	for _, ch := range []chan struct{}{attached, audioSubscribed} {
		select {
		case <-ch:
		case <-time.After(waitFor):
			t.Fatal("remote publication not handled")
		}
	}
	halt(t, a)
}

func TestPublicationAnnouncedDuringJoin(t *testing.T) {
	f := newFixture(t)
	f.devicesUp()
	f.backend.EXPECT().FindOrCreate(gomock.Any(), gomock.Any()).Return(room1, nil)

	early := domain.NewPublication(room1.ID, bob, domain.ContentVideo, "bob-cam")
	f.backend.EXPECT().Join(gomock.Any(), room1, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Room, _ domain.MemberInit, a core.Announcer) (*core.Membership, error) {
			a.Announce(early)
			return alice, nil
		})
	f.publishes()
	f.backend.EXPECT().Leave(gomock.Any(), alice).Return(nil)

	attached := make(chan struct{}, 1)
	f.backend.EXPECT().Subscribe(gomock.Any(), alice, pubID(early.ID)).
		Return(domain.Subscription{ID: "s1", PublicationID: early.ID}, nil).Times(1)
	f.remote.EXPECT().AddRenderer(streamID("bob-cam")).
		DoAndReturn(func(core.Stream) error {
			attached <- struct{}{}
			return nil
		}).Times(1)

	a := f.coord.Start(context.Background())
	if _, err := settle(t, a); err != nil {
		t.Fatal(err)
	}
	select {
	case <-attached:
	case <-time.After(waitFor):
		t.Fatal("early publication was lost")
	}
	halt(t, a)
}

func TestAudioPublishFailureKeepsVideo(t *testing.T) {
	f := newFixture(t)
	f.devicesUp()
	f.backend.EXPECT().FindOrCreate(gomock.Any(), gomock.Any()).Return(room1, nil)
	f.backend.EXPECT().Join(gomock.Any(), room1, gomock.Any(), gomock.Any()).Return(alice, nil)
	video := domain.NewPublication(room1.ID, alice.Member, domain.ContentVideo, f.video.ID())
	f.backend.EXPECT().Publish(gomock.Any(), alice, domain.ContentVideo, gomock.Any()).Return(video, nil)
	f.backend.EXPECT().Publish(gomock.Any(), alice, domain.ContentAudio, gomock.Any()).Return(domain.Publication{}, errors.New("codec refused"))
	f.backend.EXPECT().Leave(gomock.Any(), alice).Return(nil)

	a := f.coord.Start(context.Background())
	res, err := settle(t, a)
	if err != nil {
		t.Fatalf("publish failure must not fail the attempt: %v", err)
	}
	if res.VideoErr != nil || res.Video.ID != video.ID {
		t.Fatalf("video %+v %v", res.Video, res.VideoErr)
	}
	if !errors.Is(res.AudioErr, core.ErrPublish) {
		t.Fatalf("audio err %v", res.AudioErr)
	}
	kinds := map[core.NoticeKind]bool{}
	kinds[f.notes.next(t).Kind] = true
	kinds[f.notes.next(t).Kind] = true
	if !kinds[core.NoticeJoined] || !kinds[core.NoticeError] {
		t.Fatalf("notices %+v", kinds)
	}
	halt(t, a)
}

func TestContextSetupFailure(t *testing.T) {
	f := newFixture(t)
	f.media.state = mediactx.Failed
	f.media.err = errors.Join(core.ErrContextInit, core.ErrInvalidCredential)

	a := f.coord.Start(context.Background())
	_, err := settle(t, a)
	if !errors.Is(err, core.ErrContextInit) {
		t.Fatalf("expected context error, got %v", err)
	}
	if n := f.notes.next(t); n.Kind != core.NoticeError {
		t.Fatalf("notice %+v", n)
	}
	<-a.Done()
}

func TestPermissionDenied(t *testing.T) {
	f := newFixture(t)
	f.grant(false, true)

	a := f.coord.Start(context.Background())
	_, err := settle(t, a)
	if !errors.Is(err, core.ErrDevice) || !errors.Is(err, core.ErrPermissionDenied) {
		t.Fatalf("expected permission error, got %v", err)
	}
	<-a.Done()
}

func TestCancelMidSequence(t *testing.T) {
	f := newFixture(t)
	f.devicesUp()
	entered := make(chan struct{})
	f.backend.EXPECT().FindOrCreate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ domain.RoomName) (domain.Room, error) {
			close(entered)
			<-ctx.Done()
			return domain.Room{}, ctx.Err()
		})
	f.backend.EXPECT().Join(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	a := f.coord.Start(context.Background())
	select {
	case <-entered:
	case <-time.After(waitFor):
		t.Fatal("room resolve not reached")
	}
	a.Cancel()

	_, err := settle(t, a)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	<-a.Done()
	if a.Phase() != app.PhaseClosed {
		t.Fatalf("phase %s", a.Phase())
	}
}

func TestBothPublishesFail(t *testing.T) {
	f := newFixture(t)
	f.devicesUp()
	f.backend.EXPECT().FindOrCreate(gomock.Any(), gomock.Any()).Return(room1, nil)
	f.backend.EXPECT().Join(gomock.Any(), room1, gomock.Any(), gomock.Any()).Return(alice, nil)
	f.backend.EXPECT().Publish(gomock.Any(), alice, gomock.Any(), gomock.Any()).
		Return(domain.Publication{}, errors.New("backend down")).Times(2)
	f.backend.EXPECT().Leave(gomock.Any(), alice).Return(nil)

	a := f.coord.Start(context.Background())
	res, err := settle(t, a)
	if err != nil {
		t.Fatalf("publish failures must not fail the attempt: %v", err)
	}
	if !errors.Is(res.VideoErr, core.ErrPublish) || !errors.Is(res.AudioErr, core.ErrPublish) {
		t.Fatalf("video %v audio %v", res.VideoErr, res.AudioErr)
	}
	counts := map[core.NoticeKind]int{}
	for i := 0; i < 3; i++ {
		counts[f.notes.next(t).Kind]++
	}
	if counts[core.NoticeJoined] != 1 || counts[core.NoticeError] != 2 {
		t.Fatalf("notices %+v", counts)
	}
	halt(t, a)
}
