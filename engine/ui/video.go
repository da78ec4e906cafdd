package ui

import "slices"

type VideoState int

const (
	VideoPaused VideoState = iota
	VideoPlaying
	VideoEnded
)

func (s VideoState) String() string {
	switch s {
	case VideoPlaying:
		return "playing"
	case VideoEnded:
		return "ended"
	}
	return "paused"
}

// Video draws the frames of a decoded video. Playback starts when the
// element connects and pauses while the window is hidden.
type Video struct {
	Base
	player       VideoPlayer
	video        string
	state        VideoState
	loop         bool
	playbackRate float64
	flip         string
	blend        Blend
	endedFns     []func()
}

func (m *Manager) newVideo(n *Node) *Video {
	d := n.Video
	if d == nil {
		d = DefaultVideoData()
	}
	v := &Video{}
	v.init(m, v, KindVideo, n)
	v.playbackRate = d.PlaybackRate
	v.loop = d.Loop
	v.flip = d.Flip
	if b, ok := parseBlend(d.Blend); ok && b != BlendMask {
		v.blend = b
	}
	v.SetVideo(d.Video)
	v.updaters.Set("frames", &videoTicker{v: v})
	v.Emit("create", v.signal(), false)
	return v
}

type videoTicker struct{ v *Video }

func (t *videoTicker) Update(dt float64) {
	if p := t.v.player; p != nil && t.v.state == VideoPlaying {
		p.Update(dt)
	}
}

func (v *Video) State() VideoState { return v.state }
func (v *Video) Video() string     { return v.video }
func (v *Video) Flip() string      { return v.flip }
func (v *Video) Loop() bool        { return v.loop }

// SetVideo opens guid and starts it from the beginning.
func (v *Video) SetVideo(guid string) {
	if v.video == guid {
		return
	}
	v.video = guid
	if v.player != nil {
		v.player.Close()
		v.player = nil
	}
	v.state = VideoPaused
	if guid == "" || v.m.svc.Videos == nil {
		return
	}
	p, err := v.m.svc.Videos.Open(guid)
	if err != nil {
		v.m.svc.Reporter.Report(err)
		return
	}
	p.SetLoop(v.loop)
	p.SetPlaybackRate(v.playbackRate)
	p.OnEnded(v.ended)
	v.player = p
	v.play()
}

func (v *Video) play() {
	if v.player == nil {
		return
	}
	if err := v.player.Play(); err != nil {
		logger.Debug("video play failed", "video", v.video, "err", err)
		return
	}
	v.state = VideoPlaying
}

func (v *Video) ended() {
	v.state = VideoEnded
	v.Emit("ended", v.signal(), false)
	fns := v.endedFns
	v.endedFns = nil
	for _, fn := range fns {
		fn()
	}
}

func (v *Video) PlaybackRate() float64 { return v.playbackRate }

func (v *Video) SetPlaybackRate(rate float64) {
	v.playbackRate = rate
	if v.player != nil {
		v.player.SetPlaybackRate(rate)
	}
}

func (v *Video) SetLoop(on bool) {
	v.loop = on
	if v.player != nil {
		v.player.SetLoop(on)
	}
}

func (v *Video) SetFlip(s string) {
	switch s {
	case "none", "horizontal", "vertical", "both":
		v.flip = s
	}
}

func (v *Video) Pause() {
	if v.state == VideoPlaying {
		v.player.Pause()
		v.state = VideoPaused
	}
}

func (v *Video) Continue() {
	if v.state == VideoPaused {
		v.play()
	}
}

// OnEnded calls fn once playback ends, immediately if it already has.
func (v *Video) OnEnded(fn func()) {
	if v.state == VideoEnded {
		fn()
		return
	}
	v.endedFns = append(v.endedFns, fn)
}

func (v *Video) onConnect() {
	v.Continue()
	if !slices.Contains(v.m.videos, v.id) {
		v.m.videos = append(v.m.videos, v.id)
	}
}

func (v *Video) onDisconnect() {
	v.Pause()
	if i := slices.Index(v.m.videos, v.id); i != -1 {
		v.m.videos = slices.Delete(v.m.videos, i, i+1)
	}
}

func (v *Video) onVisibility(hidden bool) {
	if hidden {
		v.Pause()
	} else {
		v.Continue()
	}
}

func (v *Video) Draw(r Renderer) {
	if !v.visible {
		return
	}
	if v.player != nil {
		if tex := v.player.Texture(); tex != nil && tex.Complete() {
			dx, dy, dw, dh := v.frame.X, v.frame.Y, v.frame.Width, v.frame.Height
			switch v.flip {
			case "horizontal":
				dx, dw = dx+dw, -dw
			case "vertical":
				dy, dh = dy+dh, -dh
			case "both":
				dx, dw = dx+dw, -dw
				dy, dh = dy+dh, -dh
			}
			r.SetAlpha(v.frame.Opacity)
			r.SetBlend(v.blend)
			r.SetMatrix(v.frame.Matrix)
			clip := [4]float64{0, 0, float64(tex.Width()), float64(tex.Height())}
			r.DrawImage(tex, clip, dx, dy, dw, dh, [4]float64{})
		}
	}
	v.drawChildren(r)
}

// Destroy closes the player. Pending OnEnded callbacks still run.
func (v *Video) Destroy() {
	if v.destroyed {
		return
	}
	if v.player != nil {
		v.player.Pause()
		v.player.Close()
		v.player = nil
	}
	if v.state != VideoEnded {
		v.ended()
	}
	v.Base.Destroy()
}
