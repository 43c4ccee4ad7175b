// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lingo

import "testing"

// buildHandler assembles a Handler from a sequence of (opcode, arg)
// pairs, wiring up Instructions via DecodeInstructions so jump
// offsets resolve exactly as they would from real bytecode.
func buildHandler(ops [][2]interface{}, localCount int) *Handler {
	var raw []byte
	for _, op := range ops {
		raw = append(raw, EncodeInstruction(op[0].(Opcode), int32(op[1].(int)))...)
	}
	instrs, err := DecodeInstructions(raw)
	if err != nil {
		panic(err)
	}
	localIDs := make([]int, localCount)
	return &Handler{Bytecode: raw, Instructions: instrs, LocalNameIDs: localIDs}
}

func runHandler(t *testing.T, h *Handler, args []Datum) Datum {
	t.Helper()
	script := &Script{Names: &NameTable{}}
	vm := New(Providers{}, nil)
	return vm.CallHandler(script, h, Void(), args)
}

func TestVMAddAndReturn(t *testing.T) {
	// PUSH_INT8 3; PUSH_INT8 4; ADD; RET
	h := buildHandler([][2]interface{}{
		{OpPushInt8, 3},
		{OpPushInt8, 4},
		{OpAdd, 0},
		{OpRet, 0},
	}, 0)
	got := runHandler(t, h, nil)
	if got.Kind() != KindInt || got.Int32() != 7 {
		t.Fatalf("got %v, want integer 7", got)
	}
}

func TestVMLocalsRoundTrip(t *testing.T) {
	// SET_LOCAL 0 <- PUSH_INT8 9; GET_LOCAL 0; RET
	h := buildHandler([][2]interface{}{
		{OpPushInt8, 9},
		{OpSetLocal, 0},
		{OpGetLocal, 0},
		{OpRet, 0},
	}, 1)
	got := runHandler(t, h, nil)
	if got.Int32() != 9 {
		t.Fatalf("got %v, want 9", got)
	}
}

func TestVMJumpIfZeroSkipsBranch(t *testing.T) {
	tests := []struct {
		name string
		cond int
		want int32
	}{
		{"zero takes branch", 0, 22},
		{"nonzero falls through", 1, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// if cond == 0 { push 22 } else { push 11 }; RET
			// Jump deltas are measured from the start of the jump
			// instruction itself, so each one includes its own length.
			condPush := EncodeInstruction(OpPushInt8, int32(tt.cond))
			thenBranch := EncodeInstruction(OpPushInt8, 11)
			elseBranch := EncodeInstruction(OpPushInt8, 22)
			jmp := EncodeInstruction(OpJmp, int32(len(EncodeInstruction(OpJmp, 0))+len(elseBranch)))
			ret := EncodeInstruction(OpRet, 0)

			jmpIfZArg := int32(len(EncodeInstruction(OpJmpIfZ, 0)) + len(thenBranch) + len(jmp))
			jmpIfZ := EncodeInstruction(OpJmpIfZ, jmpIfZArg)

			var raw []byte
			raw = append(raw, condPush...)
			raw = append(raw, jmpIfZ...)
			raw = append(raw, thenBranch...)
			raw = append(raw, jmp...)
			raw = append(raw, elseBranch...)
			raw = append(raw, ret...)

			instrs, err := DecodeInstructions(raw)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			h := &Handler{Bytecode: raw, Instructions: instrs}
			got := runHandler(t, h, nil)
			if got.Int32() != tt.want {
				t.Fatalf("got %v, want %d", got, tt.want)
			}
		})
	}
}

func TestVMStepLimitHaltsRunawayLoop(t *testing.T) {
	// An unconditional JMP back to its own offset: an infinite loop the
	// step limit must still terminate.
	jmp := EncodeInstruction(OpJmp, 0)
	instrs, err := DecodeInstructions(jmp)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	h := &Handler{Bytecode: jmp, Instructions: instrs}
	script := &Script{Names: &NameTable{}}
	vm := New(Providers{}, &Options{StepLimit: 1000})
	got := vm.CallHandler(script, h, Void(), nil)
	if !got.IsVoid() {
		t.Fatalf("got %v, want void on step-limit fault", got)
	}
	if !vm.ErrorState() {
		t.Fatalf("expected ErrorState() to be set after step-limit fault")
	}
}

func TestVMParamAndLocalCall(t *testing.T) {
	// Handler 1 ("double"): GET_PARAM 0; PUSH_INT8 2; MUL; RET
	double := buildHandler([][2]interface{}{
		{OpGetParam, 0},
		{OpPushInt8, 2},
		{OpMul, 0},
		{OpRet, 0},
	}, 0)

	// Handler 0 ("main"): PUSH_INT8 5; PUSH_ARG_LIST 1; LOCAL_CALL 1; RET
	main := buildHandler([][2]interface{}{
		{OpPushInt8, 5},
		{OpPushArgList, 1},
		{OpLocalCall, 1},
		{OpRet, 0},
	}, 0)

	script := &Script{Names: &NameTable{}, Handlers: []*Handler{main, double}}
	vm := New(Providers{}, nil)
	got := vm.CallHandler(script, main, Void(), nil)
	if got.Int32() != 10 {
		t.Fatalf("got %v, want 10", got)
	}
}

func TestVMExtCallDispatchesBuiltin(t *testing.T) {
	// PUSH_INT8 -7; PUSH_ARG_LIST 1; EXT_CALL "abs"; RET
	names := &NameTable{Names: []string{"abs"}}
	raw := append([]byte{}, EncodeInstruction(OpPushInt8, -7)...)
	raw = append(raw, EncodeInstruction(OpPushArgList, 1)...)
	raw = append(raw, EncodeInstruction(OpExtCall, 0)...)
	raw = append(raw, EncodeInstruction(OpRet, 0)...)
	instrs, err := DecodeInstructions(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	h := &Handler{Bytecode: raw, Instructions: instrs}
	script := &Script{Names: names}
	vm := New(Providers{}, nil)
	got := vm.CallHandler(script, h, Void(), nil)
	if got.Int32() != 7 {
		t.Fatalf("got %v, want 7", got)
	}
}

func TestVMDivisionByZeroFaultsHandler(t *testing.T) {
	h := buildHandler([][2]interface{}{
		{OpPushInt8, 1},
		{OpPushInt8, 0},
		{OpDiv, 0},
		{OpRet, 0},
	}, 0)
	got := runHandler(t, h, nil)
	if !got.IsVoid() {
		t.Fatalf("got %v, want void on division fault", got)
	}
}
