// Package pool validates the shape of on-chain liquidity pool accounts.
package pool

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaJSON is the JSON Schema a well-formed pool account must satisfy.
// It mirrors the account layout the SDK documentation describes.
const schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["version", "tokenA", "tokenB", "lpMint", "feeBps"],
  "properties": {
    "version": {"type": "integer", "minimum": 1},
    "tokenA": {"$ref": "#/$defs/side"},
    "tokenB": {"$ref": "#/$defs/side"},
    "lpMint": {"type": "string", "minLength": 32},
    "feeBps": {"type": "integer", "minimum": 0, "maximum": 10000},
    "paused": {"type": "boolean"}
  },
  "$defs": {
    "side": {
      "type": "object",
      "required": ["mint", "reserve"],
      "properties": {
        "mint": {"type": "string", "minLength": 32},
        "reserve": {"type": "integer", "minimum": 0}
      }
    }
  }
}`

var poolSchema *jsonschema.Schema

func init() {
	var doc any
	if err := json.Unmarshal([]byte(schemaJSON), &doc); err != nil {
		panic(fmt.Sprintf("parsing embedded pool schema: %v", err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("pool.schema.json", doc); err != nil {
		panic(fmt.Sprintf("adding pool schema resource: %v", err))
	}
	sch, err := compiler.Compile("pool.schema.json")
	if err != nil {
		panic(fmt.Sprintf("compiling pool schema: %v", err))
	}
	poolSchema = sch
}

// Side is one leg of a pool.
type Side struct {
	Mint    string `mapstructure:"mint" json:"mint"`
	Reserve uint64 `mapstructure:"reserve" json:"reserve"`
}

// Account is the decoded pool account payload.
type Account struct {
	Version int    `mapstructure:"version" json:"version"`
	TokenA  Side   `mapstructure:"tokenA" json:"tokenA"`
	TokenB  Side   `mapstructure:"tokenB" json:"tokenB"`
	LPMint  string `mapstructure:"lpMint" json:"lpMint"`
	FeeBps  int    `mapstructure:"feeBps" json:"feeBps"`
	Paused  bool   `mapstructure:"paused" json:"paused"`
}

// ValidateShape checks raw pool account data against the schema and returns
// one message per violation. An empty slice means the shape is sane.
func ValidateShape(raw json.RawMessage) ([]string, error) {
	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return nil, fmt.Errorf("pool data is not valid JSON: %w", err)
	}

	err := poolSchema.Validate(instance)
	if err == nil {
		return nil, nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{err.Error()}, nil
	}
	var problems []string
	collectCauses(ve, &problems)
	return problems, nil
}

func collectCauses(ve *jsonschema.ValidationError, out *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*out = append(*out, fmt.Sprintf("%s: %s", loc, ve.Error()))
		return
	}
	for _, c := range ve.Causes {
		collectCauses(c, out)
	}
}

// Decode turns raw pool JSON into a typed Account. The payload shape is
// open-ended across SDK versions, so unknown fields are ignored.
func Decode(raw json.RawMessage) (*Account, error) {
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("decoding pool data: %w", err)
	}

	var acct Account
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &acct,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(generic); err != nil {
		return nil, fmt.Errorf("decoding pool account: %w", err)
	}
	return &acct, nil
}
