// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lingo

// Provider interfaces parameterise the VM on host behaviour. Every one
// of them may be nil; the VM degrades gracefully on an unresolved
// lookup (member lookups return Void, go() is a no-op, etc.) rather
// than panicking.

// CastLibraryProvider resolves cast/script state the VM cannot hold
// itself (the cast model lives in the container-decode package).
type CastLibraryProvider interface {
	GetMember(castLib, slot int32) (Datum, bool)
	GetMemberByName(castLib int32, name string) (Datum, bool)
	GetMemberProp(member Datum, prop string) (Datum, bool)
	SetMemberProp(member Datum, prop string, value Datum) bool
	GetCastLibProp(castLib int32, prop string) (Datum, bool)
	SetCastLibProp(castLib int32, prop string, value Datum) bool

	// FindHandler resolves a handler by name against the currently
	// reachable scripts (globally-discoverable handlers for EXT_CALL).
	FindHandler(name string) (*Script, *Handler, bool)
	// FindHandlerInScript resolves a handler by name within one
	// specific script, used for ancestor-chain method dispatch.
	FindHandlerInScript(castLib, member int32, name string) (*Script, *Handler, bool)

	PreloadCasts(mode string)
	GetScriptPropertyNames(castLib, member int32) []string
	CallMemberMethod(member Datum, method string, args []Datum) (Datum, bool)
	GetFieldValue(member Datum) (string, bool)
}

// MovieProperty exposes movie-wide state and navigation.
type MovieProperty interface {
	GetMovieProp(name string) (Datum, bool)
	SetMovieProp(name string, value Datum) bool
	ItemDelimiter() string
	SetItemDelimiter(string)
	GoToFrame(n int32)
	GoToLabel(s string)
}

// SpriteProperty exposes per-channel sprite state.
type SpriteProperty interface {
	GetSpriteProp(channel int32, name string) (Datum, bool)
	SetSpriteProp(channel int32, name string, value Datum) bool
}

// TimeoutProvider manages named timeout handles.
type TimeoutProvider interface {
	CreateTimeout(name string, periodMS int32, handlerName string, target Datum)
	ForgetTimeout(name string)
	GetTimeoutProp(name, prop string) (Datum, bool)
	SetTimeoutProp(name, prop string, value Datum) bool
}

// TaskID identifies a host-managed asynchronous task (network fetch,
// external cast load). The VM never suspends on one: Lingo polls.
type TaskID uint32

// NetworkProvider models preloadNetThing/postNetText and friends as
// opaque polled tasks
type NetworkProvider interface {
	PreloadNetThing(url string) TaskID
	PostNetText(url, body string) TaskID
	NetDone(id TaskID) bool
	NetTextResult(id TaskID) string
	NetError(id TaskID) string
	GetStreamStatus(id TaskID) (Datum, bool)
}

// ExternalParamProvider exposes command-line/embed parameters passed
// to the player.
type ExternalParamProvider interface {
	GetParamValue(name string) (Datum, bool)
	GetParamName(index int) (string, bool)
	ParamCount() int
}

// XtraProvider forwards OBJ_CALL/property access against an
// XtraInstance to the host Xtra subsystem.
type XtraProvider interface {
	NewInstance(name string, args []Datum) (Datum, error)
	CallMethod(instance Datum, method string, args []Datum) (Datum, error)
	GetProp(instance Datum, prop string) (Datum, error)
	SetProp(instance Datum, prop string, value Datum) error
}

// Providers bundles every host hook the VM accepts. Each field may be
// nil.
type Providers struct {
	Cast     CastLibraryProvider
	Movie    MovieProperty
	Sprite   SpriteProperty
	Timeout  TimeoutProvider
	Network  NetworkProvider
	ExtParam ExternalParamProvider
	Xtra     XtraProvider
}
