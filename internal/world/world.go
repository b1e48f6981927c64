// Package world is the authoritative in-process simulation the InWorld
// phase talks to over a pair of channels per connection, per spec section
// 4.6. A single fixed-cadence tick drains every client's inbound queue
// (answering movement requests) and pushes the tick's authoritative state
// into every client's outbound queue; on every tick it also prunes clients
// whose connection task has gone away.
package world

import (
	"log/slog"
	"sync"
	"time"

	"uoconnect/internal/frame"
	"uoconnect/internal/packet"
)

// playerSerial and mobSerial are fixed values for the single roaming mobile
// this reference world simulates; a production world would assign these
// per-character and per-NPC instead of hardcoding them.
const (
	playerSerial uint32 = 3833
	mobSerial    uint32 = 55858

	// clientQueueCapacity bounds the otherwise-unbounded channels of spec
	// section 4.6 to a generous fixed size; design note 9 permits
	// substituting any primitive set that meets section 5's contracts, and
	// an unbounded Go channel has no direct equivalent.
	clientQueueCapacity = 256
)

// Client is the connection-side handle returned by NewClient: ToServer
// carries client input into the world, FromServer carries world output
// back out to the socket.
type Client struct {
	ToServer   chan<- *frame.Frame
	FromServer <-chan *frame.Frame

	done chan struct{}
}

// Close signals eviction: the world prunes this client on its next tick.
// The connection task calls this when it is about to exit, mirroring the
// reference's "dropping the connection task closes both channel endpoints"
// cancellation contract.
func (c *Client) Close() {
	select {
	case <-c.done:
	default:
		close(c.done)
	}
}

type registeredClient struct {
	toClient   chan *frame.Frame
	fromClient chan *frame.Frame
	done       chan struct{}
}

type mobState struct {
	x   uint16
	dir packet.Direction
}

// World owns the client registry and the simulated mobile's state, each
// guarded by its own mutex per spec section 5's shared-resource policy.
type World struct {
	log *slog.Logger

	clientsMu sync.Mutex
	clients   []*registeredClient

	worldMu sync.Mutex
	mob     mobState

	frame int
}

func New(log *slog.Logger) *World {
	return &World{
		log: log,
		mob: mobState{x: 3668, dir: packet.DirEast},
	}
}

// Run advances the simulation at a fixed 1Hz cadence until stop is closed,
// then closes every registered client's outbound queue so each connection
// task observes eviction and exits.
func (w *World) Run(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			w.shutdown()
			return
		case <-ticker.C:
			w.tick()
		}
	}
}

// NewClient registers a new connection with the world, synthesizes its
// onboarding frames (MobLightLevel, WorldLightLevel, MobileAppearance) into
// its outbound queue, and returns the connection-side endpoint.
func (w *World) NewClient() *Client {
	rc := &registeredClient{
		toClient:   make(chan *frame.Frame, clientQueueCapacity),
		fromClient: make(chan *frame.Frame, clientQueueCapacity),
		done:       make(chan struct{}),
	}

	w.worldMu.Lock()
	mob := w.mob
	w.worldMu.Unlock()

	w.enterWorld(rc, mob)

	w.clientsMu.Lock()
	w.clients = append(w.clients, rc)
	w.clientsMu.Unlock()

	return &Client{ToServer: rc.fromClient, FromServer: rc.toClient, done: rc.done}
}

// enterWorld seeds a fresh client's outbound queue with the initial
// in-world frames, grounded on the reference world's enter_world: personal
// light level, ambient light level, and the mobile's full appearance
// including its seed equipment (supplemented feature 2).
func (w *World) enterWorld(rc *registeredClient, mob mobState) {
	rc.toClient <- &frame.Frame{Kind: frame.KindMobLightLevel, Body: &packet.MobLightLevel{Level: 30}}
	rc.toClient <- &frame.Frame{Kind: frame.KindWorldLightLevel, Body: &packet.WorldLightLevel{Overall: 30}}
	rc.toClient <- &frame.Frame{Kind: frame.KindMobileAppearance, Body: &packet.MobileAppearance{
		Serial:    mobSerial,
		BodyType:  401,
		X:         mob.x,
		Y:         2625,
		Z:         0,
		Direction: mob.dir,
		Hue:       1003,
		Flags:     0,
		Items:     seedEquipment(),
	}}
}

func seedEquipment() []packet.Item {
	return []packet.Item{
		{Serial: 0x40000001, TypeID: 0x1EFD, Layer: 0x05, Hue: 1837}, // fancy shirt
		{Serial: 0x40000002, TypeID: 0x1539, Layer: 0x04, Hue: 1897}, // long pants
		{Serial: 0x40000003, TypeID: 0x170B, Layer: 0x04, Hue: 1900}, // boots
		{Serial: 0x40000004, TypeID: 0x1515, Layer: 0x14, Hue: 1811}, // cloak
		{Serial: 0x40000005, TypeID: 0x203C, Layer: 0x0B, Hue: 1111}, // long hair
	}
}

func (w *World) tick() {
	w.frame++

	w.worldMu.Lock()
	w.advanceMob()
	mob := w.mob
	w.worldMu.Unlock()

	w.clientsMu.Lock()
	defer w.clientsMu.Unlock()

	live := w.clients[:0]
	for _, rc := range w.clients {
		select {
		case <-rc.done:
			close(rc.toClient)
			continue
		default:
		}

		w.drainInbound(rc)
		w.pushMobState(rc, mob)
		live = append(live, rc)
	}
	w.clients = live
}

func (w *World) advanceMob() {
	if (w.frame/10)%2 == 0 {
		w.mob.x++
	} else {
		w.mob.x--
	}
	if w.frame%10 == 0 {
		if w.mob.dir == packet.DirEast {
			w.mob.dir = packet.DirWest
		} else {
			w.mob.dir = packet.DirEast
		}
	}
}

// drainInbound processes everything the client has sent since the last
// tick. MovementRequest is the only request this world acts on; it always
// succeeds, replying within the same tick (Scenario E). Every other frame
// reaching the world is discarded (PingReq never arrives here; the
// connection task answers it locally).
func (w *World) drainInbound(rc *registeredClient) {
	for {
		select {
		case f := <-rc.fromClient:
			if req, ok := f.Body.(*packet.MovementRequest); ok {
				reply := &frame.Frame{
					Kind: frame.KindMovementSuccess,
					Body: &packet.MovementSuccess{Sequence: req.Sequence, Notoriety: packet.NotorietyAlly},
				}
				select {
				case rc.toClient <- reply:
				default:
					w.log.Warn("dropping movement success, client queue full")
				}
			}
		default:
			return
		}
	}
}

func (w *World) pushMobState(rc *registeredClient, mob mobState) {
	state := &frame.Frame{Kind: frame.KindMobileState, Body: &packet.MobileState{
		Serial:    mobSerial,
		BodyType:  401,
		X:         mob.x,
		Y:         2625,
		Z:         0,
		Direction: mob.dir,
		Hue:       1003,
		Flags:     0,
		Notoriety: packet.NotorietyAlly,
	}}
	select {
	case rc.toClient <- state:
	default:
		w.log.Warn("dropping mobile state broadcast, client queue full")
	}
}

func (w *World) shutdown() {
	w.clientsMu.Lock()
	defer w.clientsMu.Unlock()
	for _, rc := range w.clients {
		close(rc.toClient)
	}
	w.clients = nil
	w.log.Info("world loop shut down")
}
