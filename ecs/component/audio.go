package component

// Audio carries playback requests for named channels. A channel plays one
// clip at a time.
type Audio struct {
	Requests []AudioRequest
	Volume   float64
}

type AudioRequest struct {
	Channel string
	Clip    string
	Pitch   float64
	Loop    bool
	Stop    bool
}

// Play queues clip on channel, replacing whatever the channel plays.
func (a *Audio) Play(channel, clip string, pitch float64, loop bool) {
	if a == nil || clip == "" {
		return
	}
	if pitch <= 0 {
		pitch = 1
	}
	a.Requests = append(a.Requests, AudioRequest{Channel: channel, Clip: clip, Pitch: pitch, Loop: loop})
}

// Stop queues a stop for channel.
func (a *Audio) Stop(channel string) {
	if a == nil {
		return
	}
	a.Requests = append(a.Requests, AudioRequest{Channel: channel, Stop: true})
}

var AudioComponent = NewComponent[Audio]()
