// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package director

import (
	"fmt"
	"sync"

	"github.com/Quackster/LibreShockwave-sub002/lingo"
)

// CastProvider implements lingo.CastLibraryProvider against a
// CastManager, translating the VM's cast/member/script lookups into
// CastLibrary map accesses.
type CastProvider struct {
	Manager *CastManager
}

func (p *CastProvider) GetMember(castLib, slot int32) (lingo.Datum, bool) {
	lib, ok := p.Manager.Library(castLib)
	if !ok {
		return lingo.Void(), false
	}
	if _, ok := lib.GetMember(slot); !ok {
		return lingo.Void(), false
	}
	return lingo.CastMemberRef(castLib, slot), true
}

func (p *CastProvider) GetMemberByName(castLib int32, name string) (lingo.Datum, bool) {
	lib, ok := p.Manager.Library(castLib)
	if !ok {
		return lingo.Void(), false
	}
	if _, ok := lib.GetMemberByName(name); !ok {
		return lingo.Void(), false
	}
	for slot, m := range lib.members {
		if m.Name == name {
			return lingo.CastMemberRef(castLib, slot), true
		}
	}
	return lingo.Void(), false
}

func (p *CastProvider) resolveMember(member lingo.Datum) (*CastMember, bool) {
	castLib, slot := member.MemberRef()
	lib, ok := p.Manager.Library(castLib)
	if !ok {
		return nil, false
	}
	return lib.GetMember(slot)
}

func (p *CastProvider) GetMemberProp(member lingo.Datum, prop string) (lingo.Datum, bool) {
	m, ok := p.resolveMember(member)
	if !ok {
		return lingo.Void(), false
	}
	switch prop {
	case "name":
		return lingo.Str(m.Name), true
	case "type":
		return lingo.Symbol(m.Type.String()), true
	case "width":
		if m.Bitmap != nil {
			return lingo.Int(m.Bitmap.Width), true
		}
	case "height":
		if m.Bitmap != nil {
			return lingo.Int(m.Bitmap.Height), true
		}
	case "text":
		if m.Text != nil {
			return lingo.Str(m.Text.Text), true
		}
	}
	if v, ok := m.Prop(prop); ok {
		return lingo.Str(v), true
	}
	return lingo.Void(), false
}

func (p *CastProvider) SetMemberProp(member lingo.Datum, prop string, value lingo.Datum) bool {
	m, ok := p.resolveMember(member)
	if !ok {
		return false
	}
	switch prop {
	case "name":
		m.Name = value.ToStr()
		return true
	}
	m.SetProp(prop, value.ToStr())
	return true
}

func (p *CastProvider) GetCastLibProp(castLib int32, prop string) (lingo.Datum, bool) {
	lib, ok := p.Manager.Library(castLib)
	if !ok {
		return lingo.Void(), false
	}
	switch prop {
	case "name":
		return lingo.Str(lib.Name), true
	case "fileName":
		return lingo.Str(lib.FileName), true
	case "preloadMode":
		return lingo.Symbol(lib.PreloadMode.String()), true
	case "state":
		return lingo.Symbol(lib.State.String()), true
	}
	return lingo.Void(), false
}

func (p *CastProvider) SetCastLibProp(castLib int32, prop string, value lingo.Datum) bool {
	lib, ok := p.Manager.Library(castLib)
	if !ok {
		return false
	}
	if prop == "name" {
		lib.Name = value.ToStr()
		return true
	}
	return false
}

func (p *CastProvider) FindHandler(name string) (*lingo.Script, *lingo.Handler, bool) {
	for _, lib := range p.Manager.Libraries() {
		for slot := range lib.scripts {
			script, ok := lib.GetScript(slot)
			if !ok {
				continue
			}
			if h := script.FindHandler(name); h != nil {
				return script, h, true
			}
		}
	}
	return nil, nil, false
}

func (p *CastProvider) FindHandlerInScript(castLib, member int32, name string) (*lingo.Script, *lingo.Handler, bool) {
	lib, ok := p.Manager.Library(castLib)
	if !ok {
		return nil, nil, false
	}
	script, ok := lib.GetScript(member)
	if !ok {
		return nil, nil, false
	}
	if h := script.FindHandler(name); h != nil {
		return script, h, true
	}
	return nil, nil, false
}

// PreloadCasts requests every external library whose PreloadMode
// matches mode begin loading; actual byte-fetching is delegated to the
// host through EnsureLoaded, so this only flips the lifecycle state
// for libraries that have no bytes source configured yet (a no-op
// attach, matching the "movie still runs" degrade contract).
func (p *CastProvider) PreloadCasts(mode string) {
	var pm PreloadMode
	switch mode {
	case "afterFrameOne":
		pm = PreloadAfterFrameOne
	case "beforeFrameOne":
		pm = PreloadBeforeFrameOne
	default:
		pm = PreloadWhenNeeded
	}
	for _, lib := range p.Manager.PendingPreload(pm) {
		_ = p.Manager.EnsureLoaded(lib, func(*CastLibrary) error { return nil })
	}
}

func (p *CastProvider) GetScriptPropertyNames(castLib, member int32) []string {
	script, ok := p.Manager.ResolveScript(castLib, member)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(script.Props))
	for _, id := range script.Props {
		names = append(names, script.Names.Resolve(id))
	}
	return names
}

func (p *CastProvider) CallMemberMethod(member lingo.Datum, method string, args []lingo.Datum) (lingo.Datum, bool) {
	return lingo.Void(), false
}

func (p *CastProvider) GetFieldValue(member lingo.Datum) (string, bool) {
	m, ok := p.resolveMember(member)
	if !ok || m.Text == nil {
		return "", false
	}
	return m.Text.Text, true
}

// MovieProperties is an in-memory MovieProperty implementation backing
// the handful of movie-wide properties and playback-head navigation
// hooks a decoded container alone cannot answer (those live in the
// playback host, not the container); this package supplies a
// reasonable in-memory default so a VM can run against a loaded
// container without a full player attached.
type MovieProperties struct {
	mu        sync.Mutex
	props     map[string]lingo.Datum
	delimiter string
	onGoFrame func(int32)
	onGoLabel func(string)
}

// NewMovieProperties returns a MovieProperties with Lingo's default
// item delimiter (a comma) and no navigation hooks wired.
func NewMovieProperties() *MovieProperties {
	return &MovieProperties{props: make(map[string]lingo.Datum), delimiter: ","}
}

func (m *MovieProperties) GetMovieProp(name string) (lingo.Datum, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.props[name]
	return v, ok
}

func (m *MovieProperties) SetMovieProp(name string, value lingo.Datum) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.props[name] = value
	return true
}

func (m *MovieProperties) ItemDelimiter() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.delimiter
}

func (m *MovieProperties) SetItemDelimiter(s string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delimiter = s
}

func (m *MovieProperties) GoToFrame(n int32) {
	if m.onGoFrame != nil {
		m.onGoFrame(n)
	}
}

func (m *MovieProperties) GoToLabel(s string) {
	if m.onGoLabel != nil {
		m.onGoLabel(s)
	}
}

// OnNavigate installs the host's frame/label navigation callbacks.
func (m *MovieProperties) OnNavigate(onFrame func(int32), onLabel func(string)) {
	m.onGoFrame = onFrame
	m.onGoLabel = onLabel
}

// SpriteProperties is an in-memory, per-channel property bag; a real
// playback host would back this with its live sprite table instead.
type SpriteProperties struct {
	mu    sync.Mutex
	props map[int32]map[string]lingo.Datum
}

func NewSpriteProperties() *SpriteProperties {
	return &SpriteProperties{props: make(map[int32]map[string]lingo.Datum)}
}

func (s *SpriteProperties) GetSpriteProp(channel int32, name string) (lingo.Datum, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.props[channel]
	if !ok {
		return lingo.Void(), false
	}
	v, ok := ch[name]
	return v, ok
}

func (s *SpriteProperties) SetSpriteProp(channel int32, name string, value lingo.Datum) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.props[channel]
	if !ok {
		ch = make(map[string]lingo.Datum)
		s.props[channel] = ch
	}
	ch[name] = value
	return true
}

// timeoutEntry tracks one named timeout's configured period and target.
type timeoutEntry struct {
	periodMS    int32
	handlerName string
	target      lingo.Datum
	props       map[string]lingo.Datum
}

// TimeoutTable is an in-memory TimeoutProvider; actually firing
// timeouts on a wall clock is a host scheduling concern outside the
// decode/VM boundary, so this only tracks declared state for
// get/set_timeout_prop round-trips.
type TimeoutTable struct {
	mu      sync.Mutex
	timeout map[string]*timeoutEntry
}

func NewTimeoutTable() *TimeoutTable {
	return &TimeoutTable{timeout: make(map[string]*timeoutEntry)}
}

func (t *TimeoutTable) CreateTimeout(name string, periodMS int32, handlerName string, target lingo.Datum) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timeout[name] = &timeoutEntry{periodMS: periodMS, handlerName: handlerName, target: target, props: map[string]lingo.Datum{}}
}

func (t *TimeoutTable) ForgetTimeout(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.timeout, name)
}

func (t *TimeoutTable) GetTimeoutProp(name, prop string) (lingo.Datum, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.timeout[name]
	if !ok {
		return lingo.Void(), false
	}
	switch prop {
	case "period":
		return lingo.Int(e.periodMS), true
	case "target":
		return e.target, true
	}
	v, ok := e.props[prop]
	return v, ok
}

func (t *TimeoutTable) SetTimeoutProp(name, prop string, value lingo.Datum) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.timeout[name]
	if !ok {
		return false
	}
	if prop == "period" {
		e.periodMS = value.Int32()
		return true
	}
	e.props[prop] = value
	return true
}

// StaticExternalParams is an ExternalParamProvider backed by a fixed
// name/value map, matching how command-line/embed parameters are
// passed to the player once at startup rather than mutated at runtime.
type StaticExternalParams struct {
	order  []string
	values map[string]lingo.Datum
}

// NewStaticExternalParams builds a provider from an ordered name list
// and a parallel value list.
func NewStaticExternalParams(names []string, values []lingo.Datum) *StaticExternalParams {
	p := &StaticExternalParams{order: append([]string{}, names...), values: make(map[string]lingo.Datum, len(names))}
	for i, n := range names {
		if i < len(values) {
			p.values[n] = values[i]
		}
	}
	return p
}

func (p *StaticExternalParams) GetParamValue(name string) (lingo.Datum, bool) {
	v, ok := p.values[name]
	return v, ok
}

func (p *StaticExternalParams) GetParamName(index int) (string, bool) {
	if index < 0 || index >= len(p.order) {
		return "", false
	}
	return p.order[index], true
}

func (p *StaticExternalParams) ParamCount() int { return len(p.order) }

// NullNetworkProvider reports every task as immediately done with no
// data. A headless decoder has no network stack of its own; a
// playback host wanting real fetches supplies its own NetworkProvider
// instead of this one.
type NullNetworkProvider struct{}

func (NullNetworkProvider) PreloadNetThing(url string) lingo.TaskID { return 0 }
func (NullNetworkProvider) PostNetText(url, body string) lingo.TaskID { return 0 }
func (NullNetworkProvider) NetDone(id lingo.TaskID) bool              { return true }
func (NullNetworkProvider) NetTextResult(id lingo.TaskID) string     { return "" }
func (NullNetworkProvider) NetError(id lingo.TaskID) string          { return "" }
func (NullNetworkProvider) GetStreamStatus(id lingo.TaskID) (lingo.Datum, bool) {
	return lingo.Void(), false
}

// NullXtraProvider rejects every Xtra instantiation; no Xtra host
// process is reachable from a pure container decoder.
type NullXtraProvider struct{}

func (NullXtraProvider) NewInstance(name string, args []lingo.Datum) (lingo.Datum, error) {
	return lingo.Void(), fmt.Errorf("director: no xtra host configured for %q", name)
}

func (NullXtraProvider) CallMethod(instance lingo.Datum, method string, args []lingo.Datum) (lingo.Datum, error) {
	return lingo.Void(), fmt.Errorf("director: no xtra host configured")
}

func (NullXtraProvider) GetProp(instance lingo.Datum, prop string) (lingo.Datum, error) {
	return lingo.Void(), fmt.Errorf("director: no xtra host configured")
}

func (NullXtraProvider) SetProp(instance lingo.Datum, prop string, value lingo.Datum) error {
	return fmt.Errorf("director: no xtra host configured")
}

// NewProviders assembles a full lingo.Providers bundle: CastProvider
// wired to manager, fresh in-memory movie/sprite/timeout state, a
// static (empty) external-param set, and the null network/Xtra
// fallbacks. Callers embedding this in a real player replace whichever
// fields need a live host behind them.
func NewProviders(manager *CastManager) lingo.Providers {
	return lingo.Providers{
		Cast:     &CastProvider{Manager: manager},
		Movie:    NewMovieProperties(),
		Sprite:   NewSpriteProperties(),
		Timeout:  NewTimeoutTable(),
		Network:  NullNetworkProvider{},
		ExtParam: NewStaticExternalParams(nil, nil),
		Xtra:     NullXtraProvider{},
	}
}
