// Package frame implements the framing layer of spec section 4.3: buffered
// decode of one complete packet at a time from a growing receive buffer,
// dispatch by (id, extended id) to a typed Frame, and per-phase whitelists
// that gate which Frame kinds may cross the wire in either direction.
//
// The reference design calls for phase-specific closed tagged unions (one
// sum type of inbound frame variants, one of outbound, per phase). With a
// catalog this size, a Kind-tagged struct carrying a packet.Body value is
// the more maintainable Go shape for the same contract: Kind enumerates
// exactly the legal variants, a Whitelist restricts which Kinds a given
// phase will accept or emit, and the catalog below is the single place
// mapping a Kind to its wire descriptor and a fresh zero value.
package frame

import "uoconnect/internal/packet"

// Kind identifies one packet type handled anywhere in this engine.
type Kind int

const (
	KindClientHello Kind = iota
	KindAccountLogin
	KindLoginRejection
	KindServerList
	KindServerSelection
	KindGameServerHandoff
	KindGameLogin
	KindFeatures
	KindCharList
	KindVersionReq
	KindVersionResp
	KindCreateCharacter
	KindLoginConfirmation
	KindLoginComplete
	KindCharStatus
	KindMobLightLevel
	KindWorldLightLevel
	KindMobileState
	KindMobileAppearance
	KindPingReq
	KindPingAck
	KindMovementRequest
	KindMovementReject
	KindMovementSuccess
	KindWindowSize
	KindLanguage
	KindMapChange
	KindCloseStatus
	KindClientFlags
	KindEntityBatchQuery
	KindViewRange
)

var descriptors = map[Kind]packet.Descriptor{
	KindClientHello:       packet.DescClientHello,
	KindAccountLogin:      packet.DescAccountLogin,
	KindLoginRejection:    packet.DescLoginRejection,
	KindServerList:        packet.DescServerList,
	KindServerSelection:   packet.DescServerSelection,
	KindGameServerHandoff: packet.DescGameServerHandoff,
	KindGameLogin:         packet.DescGameLogin,
	KindFeatures:          packet.DescFeatures,
	KindCharList:          packet.DescCharList,
	KindVersionReq:        packet.DescVersionReq,
	KindVersionResp:       packet.DescVersionResp,
	KindCreateCharacter:   packet.DescCreateCharacter,
	KindLoginConfirmation: packet.DescLoginConfirmation,
	KindLoginComplete:     packet.DescLoginComplete,
	KindCharStatus:        packet.DescCharStatus,
	KindMobLightLevel:     packet.DescMobLightLevel,
	KindWorldLightLevel:   packet.DescWorldLightLevel,
	KindMobileState:       packet.DescMobileState,
	KindMobileAppearance:  packet.DescMobileAppearance,
	KindPingReq:           packet.DescPingReq,
	KindPingAck:           packet.DescPingAck,
	KindMovementRequest:   packet.DescMovementRequest,
	KindMovementReject:    packet.DescMovementReject,
	KindMovementSuccess:   packet.DescMovementSuccess,
	KindWindowSize:        packet.DescWindowSize,
	KindLanguage:          packet.DescLanguage,
	KindMapChange:         packet.DescMapChange,
	KindCloseStatus:       packet.DescCloseStatus,
	KindClientFlags:       packet.DescClientFlags,
	KindEntityBatchQuery:  packet.DescEntityBatchQuery,
	KindViewRange:         packet.DescViewRange,
}

var factories = map[Kind]func() packet.Body{
	KindClientHello:       func() packet.Body { return &packet.ClientHello{} },
	KindAccountLogin:      func() packet.Body { return &packet.AccountLogin{} },
	KindLoginRejection:    func() packet.Body { return &packet.LoginRejection{} },
	KindServerList:        func() packet.Body { return &packet.ServerList{} },
	KindServerSelection:   func() packet.Body { return &packet.ServerSelection{} },
	KindGameServerHandoff: func() packet.Body { return &packet.GameServerHandoff{} },
	KindGameLogin:         func() packet.Body { return &packet.GameLogin{} },
	KindFeatures:          func() packet.Body { return &packet.Features{} },
	KindCharList:          func() packet.Body { return &packet.CharList{} },
	KindVersionReq:        func() packet.Body { return &packet.VersionReq{} },
	KindVersionResp:       func() packet.Body { return &packet.VersionResp{} },
	KindCreateCharacter:   func() packet.Body { return &packet.CreateCharacter{} },
	KindLoginConfirmation: func() packet.Body { return &packet.LoginConfirmation{} },
	KindLoginComplete:     func() packet.Body { return &packet.LoginComplete{} },
	KindCharStatus:        func() packet.Body { return &packet.CharStatus{} },
	KindMobLightLevel:     func() packet.Body { return &packet.MobLightLevel{} },
	KindWorldLightLevel:   func() packet.Body { return &packet.WorldLightLevel{} },
	KindMobileState:       func() packet.Body { return &packet.MobileState{} },
	KindMobileAppearance:  func() packet.Body { return &packet.MobileAppearance{} },
	KindPingReq:           func() packet.Body { return &packet.PingReq{} },
	KindPingAck:           func() packet.Body { return &packet.PingAck{} },
	KindMovementRequest:   func() packet.Body { return &packet.MovementRequest{} },
	KindMovementReject:    func() packet.Body { return &packet.MovementReject{} },
	KindMovementSuccess:   func() packet.Body { return &packet.MovementSuccess{} },
	KindWindowSize:        func() packet.Body { return &packet.WindowSize{} },
	KindLanguage:          func() packet.Body { return &packet.Language{} },
	KindMapChange:         func() packet.Body { return &packet.MapChange{} },
	KindCloseStatus:       func() packet.Body { return &packet.CloseStatus{} },
	KindClientFlags:       func() packet.Body { return &packet.ClientFlags{} },
	KindEntityBatchQuery:  func() packet.Body { return &packet.EntityBatchQuery{} },
	KindViewRange:         func() packet.Body { return &packet.ViewRange{} },
}

// idKey distinguishes primary ids, and for the 0xBF escape, the secondary
// extended id that actually identifies the packet.
type idKey struct {
	id       uint8
	extended bool
	extID    uint16
}

func keyFor(k Kind) idKey {
	d := descriptors[k]
	if d.Policy == packet.Extended {
		return idKey{id: 0xBF, extended: true, extID: d.ExtendedID}
	}
	return idKey{id: d.ID}
}

// Frame pairs a Kind with its decoded or to-be-encoded body.
type Frame struct {
	Kind Kind
	Body packet.Body
}
