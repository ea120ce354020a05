// Package config loads the TOML-encoded service configuration (§6),
// a tagged union over the naive and cooperative OPRF variants, matching
// the shape of fingerprinting-cli/src/config.rs's FingerprintServiceConfig.
package config

import (
	"github.com/BurntSushi/toml"

	"github.com/luxfi/fingerprinting/pkg/agent"
	"github.com/luxfi/fingerprinting/pkg/compact"
	"github.com/luxfi/fingerprinting/pkg/ferr"
	"github.com/luxfi/fingerprinting/pkg/field"
	"github.com/luxfi/fingerprinting/pkg/oprf"
)

// NaiveConfig holds the single master secret (§6: `naive: {secret: base58-scalar}`).
type NaiveConfig struct {
	Secret string `toml:"secret"`
}

// MemberConfig is one agent's identity plus its resolvable address
// (§6: `members: [{agent_id, address}]`).
type MemberConfig struct {
	AgentID int    `toml:"agent_id"`
	Address string `toml:"address"`
}

// CooperativeConfig holds the local agent's identity, its own share, and
// the full topology (§6: `cooperative: {agent_id, secret_shard, agents,
// threshold, members}`).
type CooperativeConfig struct {
	AgentID     int            `toml:"agent_id"`
	SecretShard string         `toml:"secret_shard"`
	Agents      int            `toml:"agents"`
	Threshold   int            `toml:"threshold"`
	Members     []MemberConfig `toml:"members"`
}

// probe decodes only the discriminator, the first pass of the two-pass
// decode this tagged union requires.
type probe struct {
	Type string `toml:"type"`
}

// FingerprintServiceConfig is the decoded, validated configuration: the
// OPRF evaluator and (cooperative only) the local Cooperation service
// to expose to peers.
type FingerprintServiceConfig struct {
	Protocol    oprf.Protocol
	Cooperation *agent.CooperationService // nil in naive mode
}

// Load decodes raw TOML text into a FingerprintServiceConfig, building
// the naive or cooperative OPRF evaluator named by the `type` field.
func Load(data string) (*FingerprintServiceConfig, error) {
	var p probe
	if _, err := toml.Decode(data, &p); err != nil {
		return nil, ferr.Wrap(ferr.ConfigInvalid, "config.Load", err)
	}

	switch p.Type {
	case "naive":
		var c NaiveConfig
		if _, err := toml.Decode(data, &c); err != nil {
			return nil, ferr.Wrap(ferr.ConfigInvalid, "config.Load", err)
		}
		return loadNaive(c)
	case "cooperative":
		var c CooperativeConfig
		if _, err := toml.Decode(data, &c); err != nil {
			return nil, ferr.Wrap(ferr.ConfigInvalid, "config.Load", err)
		}
		return loadCooperative(c)
	default:
		return nil, ferr.New(ferr.ConfigInvalid, "config.Load", "unknown service type: "+p.Type)
	}
}

func loadNaive(c NaiveConfig) (*FingerprintServiceConfig, error) {
	secret, err := compact.ParseScalar(c.Secret)
	if err != nil {
		return nil, ferr.Wrap(ferr.ConfigInvalid, "config.loadNaive", err)
	}
	return &FingerprintServiceConfig{Protocol: oprf.NewNaive(secret)}, nil
}

func loadCooperative(c CooperativeConfig) (*FingerprintServiceConfig, error) {
	if c.AgentID < 1 || c.AgentID > c.Agents {
		return nil, ferr.New(ferr.ConfigInvalid, "config.loadCooperative", "agent_id out of range")
	}

	shard, err := compact.ParseScalar(c.SecretShard)
	if err != nil {
		return nil, ferr.Wrap(ferr.ConfigInvalid, "config.loadCooperative", err)
	}

	members := make([]agent.Member, 0, len(c.Members))
	for _, m := range c.Members {
		if m.AgentID == c.AgentID {
			// Self is never dialed through the remote topology.
			continue
		}
		members = append(members, agent.Member{AgentID: m.AgentID, Addresses: []string{m.Address}})
	}

	topology, err := agent.NewStaticTopology(c.Threshold, c.Agents, members, agent.NewHTTPClient())
	if err != nil {
		return nil, err
	}

	return &FingerprintServiceConfig{
		Protocol:    oprf.NewCooperative(c.AgentID, shard, topology),
		Cooperation: agent.NewCooperationService(c.AgentID, shard),
	}, nil
}
