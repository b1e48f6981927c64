package frame

// Login phases, in the order of spec section 4.5's login machine.
var (
	LoginConnected = NewWhitelist(
		[]Kind{KindClientHello},
		nil,
	)
	LoginHello = NewWhitelist(
		[]Kind{KindAccountLogin},
		nil,
	)
	LoginLogin = NewWhitelist(
		nil,
		[]Kind{KindServerList, KindLoginRejection},
	)
	LoginServerSelect = NewWhitelist(
		[]Kind{KindServerSelection},
		nil,
	)
	LoginHandoff = NewWhitelist(
		nil,
		[]Kind{KindGameServerHandoff},
	)
)

// Game phases, in the order of spec section 4.5's game machine. Connected
// has no Kind for the 4-byte client seed that precedes GameLogin on the
// wire: the seed is a raw prefix, not a catalog packet, and is stripped by
// the caller before frames are ever decoded.
var (
	GameConnected = NewWhitelist(
		[]Kind{KindGameLogin},
		nil,
	)
	GameCharList = NewWhitelist(
		nil,
		[]Kind{KindFeatures, KindCharList, KindVersionReq},
	)
	GameClientVersion = NewWhitelist(
		[]Kind{KindVersionResp},
		nil,
	)
	GameCharSelect = NewWhitelist(
		[]Kind{KindCreateCharacter},
		nil,
	)
	GameCharLogin = NewWhitelist(
		nil,
		[]Kind{KindLoginConfirmation, KindCharStatus, KindLoginComplete},
	)
	GameInWorld = NewWhitelist(
		[]Kind{
			KindPingReq,
			KindMovementRequest,
			KindWindowSize,
			KindLanguage,
			KindCloseStatus,
			KindClientFlags,
			KindViewRange,
			KindEntityBatchQuery,
		},
		[]Kind{
			KindMobileAppearance,
			KindMobLightLevel,
			KindWorldLightLevel,
			KindMobileState,
			KindMovementSuccess,
			KindMovementReject,
			KindPingAck,
			KindMapChange,
		},
	)
)
