package session

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/lox/pokercal/internal/ledger"
)

// TableConfig is a table file: session settings plus the starting players.
type TableConfig struct {
	Session *SessionSettings `hcl:"session,block"`
	Players []PlayerConfig   `hcl:"player,block"`
}

// SessionSettings contains session-level settings
type SessionSettings struct {
	Name         string `hcl:"name,optional"`
	DefaultBuyIn int    `hcl:"default_buy_in,optional"`
}

// PlayerConfig is one player's starting amounts. Omitting buy_ins records
// the session's default buy-in; buy_ins = [] records none.
type PlayerConfig struct {
	Name     string `hcl:"name,label"`
	BuyIns   []int  `hcl:"buy_ins,optional"`
	Checkout int    `hcl:"checkout,optional"`
	Spent    int    `hcl:"spent,optional"`
}

// DefaultTable returns the sample table used when no file is given.
func DefaultTable() *TableConfig {
	return &TableConfig{
		Session: &SessionSettings{Name: "sample", DefaultBuyIn: ledger.DefaultBuyIn},
		Players: []PlayerConfig{
			{Name: "Binh", BuyIns: []int{50, 100}, Checkout: 120, Spent: 20},
			{Name: "Hieu", BuyIns: []int{100}, Checkout: 120},
			{Name: "Tai", Checkout: 150, Spent: 30},
			{Name: "Hoang", BuyIns: []int{50, 50}, Checkout: 50, Spent: 10},
			{Name: "Do", BuyIns: []int{100, 100}, Checkout: 350},
			{Name: "Long", BuyIns: []int{50, 50}, Spent: 5},
		},
	}
}

// LoadTable reads a table file.
func LoadTable(filename string) (*TableConfig, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read table file: %w", err)
	}
	return ParseTable(src, filename)
}

// ParseTable decodes table HCL and applies defaults. filename is only used
// in diagnostics.
func ParseTable(src []byte, filename string) (*TableConfig, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config TableConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if config.Session == nil {
		config.Session = &SessionSettings{}
	}
	if config.Session.DefaultBuyIn == 0 {
		config.Session.DefaultBuyIn = ledger.DefaultBuyIn
	}

	return &config, nil
}

// Validate validates the table configuration
func (c *TableConfig) Validate() error {
	if c.Session != nil && c.Session.DefaultBuyIn < 0 {
		return fmt.Errorf("default buy-in cannot be negative")
	}

	for i, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("player %d: name is required", i+1)
		}
		for _, amount := range p.BuyIns {
			if amount <= 0 {
				return fmt.Errorf("player %s: buy-ins must be positive, got %d", p.Name, amount)
			}
		}
		if p.Checkout < 0 {
			return fmt.Errorf("player %s: checkout cannot be negative", p.Name)
		}
		if p.Spent < 0 {
			return fmt.Errorf("player %s: spent cannot be negative", p.Name)
		}
	}

	return nil
}

// Build validates the table and creates a session holding its players in
// file order.
func (c *TableConfig) Build(opts ...Option) (*Session, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	settings := SessionSettings{DefaultBuyIn: ledger.DefaultBuyIn}
	if c.Session != nil {
		settings = *c.Session
	}
	if settings.DefaultBuyIn == 0 {
		settings.DefaultBuyIn = ledger.DefaultBuyIn
	}

	opts = append([]Option{WithName(settings.Name), WithDefaultBuyIn(settings.DefaultBuyIn)}, opts...)
	s := New(opts...)

	for _, p := range c.Players {
		buyIns := p.BuyIns
		if buyIns == nil {
			buyIns = []int{settings.DefaultBuyIn}
		}
		s.Append(ledger.New(p.Name,
			ledger.WithBuyIns(buyIns...),
			ledger.WithCheckout(p.Checkout),
			ledger.WithSpent(p.Spent),
			ledger.WithClock(s.clock),
		))
	}
	return s, nil
}

// EncodeTable writes c as HCL.
func EncodeTable(w io.Writer, c *TableConfig) error {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	if c.Session != nil {
		sb := body.AppendNewBlock("session", nil).Body()
		if c.Session.Name != "" {
			sb.SetAttributeValue("name", cty.StringVal(c.Session.Name))
		}
		if c.Session.DefaultBuyIn != 0 {
			sb.SetAttributeValue("default_buy_in", cty.NumberIntVal(int64(c.Session.DefaultBuyIn)))
		}
	}

	for _, p := range c.Players {
		body.AppendNewline()
		pb := body.AppendNewBlock("player", []string{p.Name}).Body()
		if p.BuyIns != nil {
			pb.SetAttributeValue("buy_ins", intList(p.BuyIns))
		}
		if p.Checkout != 0 {
			pb.SetAttributeValue("checkout", cty.NumberIntVal(int64(p.Checkout)))
		}
		if p.Spent != 0 {
			pb.SetAttributeValue("spent", cty.NumberIntVal(int64(p.Spent)))
		}
	}

	_, err := f.WriteTo(w)
	return err
}

func intList(values []int) cty.Value {
	if len(values) == 0 {
		return cty.ListValEmpty(cty.Number)
	}
	vals := make([]cty.Value, len(values))
	for i, v := range values {
		vals[i] = cty.NumberIntVal(int64(v))
	}
	return cty.ListVal(vals)
}
