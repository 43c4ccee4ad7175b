// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lingo

import (
	"github.com/go-kratos/kratos/v2/log"
)

// Options configures a VM instance.
type Options struct {
	// StepLimit caps total dispatched instructions across every scope
	// on the call stack; 0 selects DefaultStepLimit.
	StepLimit int

	// AncestorDepthLimit bounds ancestor-chain walks; 0 selects
	// AncestorTraversalLimit.
	AncestorDepthLimit int

	// Logger receives handler errors and diagnostic events. Defaults to
	// a stdout logger filtered to error level.
	Logger log.Logger
}

// VM is the Lingo bytecode interpreter: operand/call stacks, global
// variables, the step counter, and the provider set it dispatches
// host operations through.
type VM struct {
	Providers Providers

	Globals map[string]Datum

	callStack []*Scope
	steps     int
	stepLimit int

	ancestorDepthLimit int

	// errorState is set by a handler fault and cleared at the next
	// external event tick category 2.
	errorState bool

	instances    []*ScriptInstanceObj
	nextInstance int

	logger *log.Helper

	// ScriptResolver finds a script's compiled Handler set for
	// NEW_OBJ/ScriptRef.new construction; wired by the host (director
	// package) since only it has the cast/script decode model.
	ScriptResolver ScriptResolver
}

// ScriptResolver resolves a ScriptRef Datum to its compiled Script, so
// NEW_OBJ and method dispatch can find handlers and the declared
// property/ancestor name lists.
type ScriptResolver interface {
	ResolveScript(castLib, member int32) (*Script, bool)
	ResolveScriptByName(name string) (*Script, bool)
}

// New creates a VM with the given providers and options.
func New(providers Providers, opts *Options) *VM {
	if opts == nil {
		opts = &Options{}
	}
	stepLimit := opts.StepLimit
	if stepLimit == 0 {
		stepLimit = DefaultStepLimit
	}
	depthLimit := opts.AncestorDepthLimit
	if depthLimit == 0 {
		depthLimit = AncestorTraversalLimit
	}
	var logger log.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		logger = log.NewStdLogger(nil)
	}
	return &VM{
		Providers:          providers,
		Globals:            make(map[string]Datum),
		stepLimit:          stepLimit,
		ancestorDepthLimit: depthLimit,
		logger:             log.NewHelper(log.NewFilter(logger, log.FilterLevel(log.LevelError))),
	}
}

// ErrorState reports whether a handler fault is suppressing further
// dispatch this tick
func (vm *VM) ErrorState() bool { return vm.errorState }

// ClearErrorState is called by the host at the next external event
// (e.g. the next frame)
func (vm *VM) ClearErrorState() { vm.errorState = false }

// newInstanceObj allocates a ScriptInstanceObj with the next
// sequential ID and records it in the VM's instance list; callers
// hold the returned pointer.
func (vm *VM) newInstanceObj() *ScriptInstanceObj {
	id := vm.nextInstance
	vm.nextInstance++
	obj := &ScriptInstanceObj{ID: id, Properties: make(map[string]Datum), Ancestor: Void(), ScriptRef: Void()}
	vm.instances = append(vm.instances, obj)
	return obj
}

// CallHandler is the entry point hosts use to invoke a Lingo handler:
// it allocates a Scope, runs it to completion, and returns the
// handler's result (or Void on error/step-limit).
func (vm *VM) CallHandler(script *Script, handler *Handler, me Datum, args []Datum) Datum {
	if vm.errorState {
		return Void()
	}
	scope := newScope(script, handler, me, args)
	vm.callStack = append(vm.callStack, scope)
	defer func() {
		vm.callStack = vm.callStack[:len(vm.callStack)-1]
	}()

	for !scope.finished() {
		if vm.steps >= vm.stepLimit {
			scope.Error = true
			vm.errorState = true
			vm.logger.Errorf("lingo: step limit exceeded in handler %v", handlerDebugName(script, handler))
			return Void()
		}
		vm.steps++

		instr, ok := scope.currentInstruction()
		if !ok {
			break
		}
		advance, err := vm.dispatch(scope, instr)
		if err != nil {
			scope.Error = true
			vm.errorState = true
			vm.logger.Errorf("lingo: handler %v: %v", handlerDebugName(script, handler), err)
			return Void()
		}
		if advance {
			scope.BytecodeIndex++
		}
	}
	if scope.Error {
		return Void()
	}
	return scope.ReturnValue
}

func handlerDebugName(script *Script, handler *Handler) string {
	if script == nil || handler == nil {
		return "<unknown>"
	}
	if n := handler.Name(script.Names); n != "" {
		return n
	}
	return "<anonymous>"
}

// currentScope is the top of the call stack, used by callAncestor to
// find the script currently executing.
func (vm *VM) currentScope() *Scope {
	if len(vm.callStack) == 0 {
		return nil
	}
	return vm.callStack[len(vm.callStack)-1]
}
