package ops

import (
	"fmt"
	"time"

	"github.com/aretw0/riposte/pkg/domain"
	"github.com/aretw0/riposte/pkg/registry"
	"github.com/mitchellh/mapstructure"
)

// RegisterBuiltins registers every built-in operation kind.
func RegisterBuiltins(r *registry.Registry) {
	r.Register("sound", soundFactory)
	r.Register("damage", damageFactory)
	r.Register("heal", healFactory)
	r.Register("await", awaitFactory)
	r.Register("tally", tallyFactory)
	r.Register("branch", branchFactory)
	r.Register("cooldown", cooldownFactory)
	r.Register("charge", chargeFactory)
}

// decode maps raw step params onto a config struct, rejecting unknown keys
// and parsing duration strings.
func decode(params map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
		DecodeHook:  mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	return dec.Decode(params)
}

func soundFactory(bc *registry.BuildContext) error {
	var cfg struct {
		Name string `mapstructure:"name"`
	}
	if err := decode(bc.Params, &cfg); err != nil {
		return err
	}
	if cfg.Name == "" {
		return fmt.Errorf("sound: missing name")
	}
	bc.Add(&Sound{Name: cfg.Name})
	return nil
}

func damageFactory(bc *registry.BuildContext) error {
	var cfg struct {
		Amount float64 `mapstructure:"amount"`
	}
	if err := decode(bc.Params, &cfg); err != nil {
		return err
	}
	if cfg.Amount <= 0 {
		return fmt.Errorf("damage: amount must be positive, got %v", cfg.Amount)
	}
	bc.Add(&Damage{Amount: cfg.Amount})
	return nil
}

func healFactory(bc *registry.BuildContext) error {
	var cfg struct {
		Amount float64 `mapstructure:"amount"`
	}
	if err := decode(bc.Params, &cfg); err != nil {
		return err
	}
	if cfg.Amount <= 0 {
		return fmt.Errorf("heal: amount must be positive, got %v", cfg.Amount)
	}
	bc.Add(&Heal{Amount: cfg.Amount})
	return nil
}

func awaitFactory(bc *registry.BuildContext) error {
	var cfg struct {
		Source string `mapstructure:"source"`
	}
	if err := decode(bc.Params, &cfg); err != nil {
		return err
	}
	source := domain.WaitSource(cfg.Source)
	if source == domain.WaitNone {
		source = domain.WaitClient
	}
	bc.Add(&Await{Source: source})
	return nil
}

func tallyFactory(bc *registry.BuildContext) error {
	var cfg struct {
		Key string `mapstructure:"key"`
	}
	if err := decode(bc.Params, &cfg); err != nil {
		return err
	}
	if cfg.Key == "" {
		return fmt.Errorf("tally: missing key")
	}
	bc.Add(&Tally{Key: cfg.Key})
	return nil
}

func branchFactory(bc *registry.BuildContext) error {
	var cfg struct {
		Key     string `mapstructure:"key"`
		AtLeast int    `mapstructure:"at_least"`
		To      string `mapstructure:"to"`
	}
	if err := decode(bc.Params, &cfg); err != nil {
		return err
	}
	if cfg.Key == "" || cfg.To == "" {
		return fmt.Errorf("branch: key and to are required")
	}
	if cfg.AtLeast <= 0 {
		cfg.AtLeast = 1
	}
	bc.Add(&Branch{Key: cfg.Key, AtLeast: cfg.AtLeast, To: bc.Label(cfg.To)})
	return nil
}

func cooldownFactory(bc *registry.BuildContext) error {
	var cfg struct {
		Key        string        `mapstructure:"key"`
		Duration   time.Duration `mapstructure:"duration"`
		OnCooldown string        `mapstructure:"on_cooldown"`
	}
	if err := decode(bc.Params, &cfg); err != nil {
		return err
	}
	if cfg.Key == "" {
		return fmt.Errorf("cooldown: missing key")
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("cooldown: duration must be positive")
	}
	gate := &CooldownGate{Key: cfg.Key, Duration: cfg.Duration}
	if cfg.OnCooldown != "" {
		gate.OnCooldown = bc.Label(cfg.OnCooldown)
	}
	bc.Add(gate)
	return nil
}

// chargeFactory lowers a charge-up step into the primitive loop
//
//	loop: tally; await; branch(done); jump loop
//
// so each charge iteration runs once per tick, suspends until the source
// confirms, and falls through to the done label when fully charged.
func chargeFactory(bc *registry.BuildContext) error {
	var cfg struct {
		Ticks  int    `mapstructure:"ticks"`
		Done   string `mapstructure:"done"`
		Source string `mapstructure:"source"`
		Key    string `mapstructure:"key"`
	}
	if err := decode(bc.Params, &cfg); err != nil {
		return err
	}
	if cfg.Ticks <= 0 {
		return fmt.Errorf("charge: ticks must be positive")
	}
	if cfg.Done == "" {
		return fmt.Errorf("charge: missing done label")
	}
	source := domain.WaitSource(cfg.Source)
	if source == domain.WaitNone {
		source = domain.WaitClient
	}
	key := cfg.Key
	if key == "" {
		key = "charge"
	}

	loop := bc.Builder.CreateLabel()
	bc.Add(&Tally{Key: key})
	bc.Builder.AddOperation(&Await{Source: source})
	bc.Builder.AddOperation(&Branch{Key: key, AtLeast: cfg.Ticks, To: bc.Label(cfg.Done)})
	bc.Builder.Jump(loop)
	return nil
}
