package keymap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinModifierTable(t *testing.T) {
	loaded, err := Load(BuiltinCompiler{}, DefaultRuleNames)
	require.NoError(t, err)

	assert.Equal(t, ModifierState{Depressed: 1, Effective: 1}, loaded.Modifiers.State(ModShift))
	assert.Equal(t, ModifierState{}, loaded.Modifiers.State(ModNone))
	assert.Contains(t, loaded.Text, "xkb_keymap")
	assert.Contains(t, loaded.Text, "pc+us")
}

func TestModifierTableOutOfRange(t *testing.T) {
	loaded, err := Load(BuiltinCompiler{}, DefaultRuleNames)
	require.NoError(t, err)

	assert.Equal(t, loaded.Modifiers.State(ModNone), loaded.Modifiers.State(Modifier(7)))
	assert.Equal(t, "modifier(7)", Modifier(7).String())
	assert.Equal(t, "shift", ModShift.String())
}

func TestBuiltinRejectsOtherLayouts(t *testing.T) {
	tests := []struct {
		name  string
		names RuleNames
	}{
		{"german layout", RuleNames{Model: "pc104", Layout: "de"}},
		{"unknown model", RuleNames{Model: "macintosh"}},
		{"variant", RuleNames{Model: "pc105", Layout: "us", Variant: "dvorak"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(BuiltinCompiler{}, tt.names)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnsupportedLayout))
		})
	}
}

func TestBuiltinStateMachine(t *testing.T) {
	km, err := BuiltinCompiler{}.Compile(DefaultRuleNames)
	require.NoError(t, err)
	defer km.Close()

	st := km.NewState()
	st.UpdateKey(29, KeyDown) // left ctrl
	st.UpdateKey(KeyLeftShift, KeyDown)
	assert.Equal(t, uint32(maskShift|maskControl), st.Serialize(Depressed))

	st.UpdateKey(KeyLeftShift, KeyUp)
	st.UpdateKey(29, KeyUp)
	assert.Zero(t, st.Serialize(Effective))

	// Caps lock toggles the locked mask on press only.
	st.UpdateKey(58, KeyDown)
	st.UpdateKey(58, KeyUp)
	assert.Equal(t, uint32(maskLock), st.Serialize(Locked))
	assert.Equal(t, uint32(maskLock), st.Serialize(Effective))
	assert.Zero(t, st.Serialize(Depressed))
}

type fakeState struct{ down bool }

func (s *fakeState) UpdateKey(code uint32, dir KeyDirection) {
	if code == KeyLeftShift {
		s.down = dir == KeyDown
	}
}

func (s *fakeState) Serialize(c Component) uint32 {
	if !s.down {
		return 0
	}
	return uint32(c) + 10
}

type fakeKeymap struct{}

func (fakeKeymap) String() string { return "fake" }

func (fakeKeymap) NewState() State { return &fakeState{} }

func (fakeKeymap) Close() {}

func TestBuildModifierTableCapturesEveryComponent(t *testing.T) {
	table := BuildModifierTable(fakeKeymap{})

	assert.Equal(t, ModifierState{Depressed: 10, Latched: 11, Locked: 12, Effective: 13}, table.State(ModShift))
	assert.Equal(t, ModifierState{}, table.State(ModNone))
}
