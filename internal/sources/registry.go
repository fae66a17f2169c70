package sources

import (
	"log/slog"
	"sort"

	"fiipulse/internal/config"
	"fiipulse/internal/httpclient"
	"fiipulse/internal/infrastructure"
)

// Build assembles the enabled connectors from configuration, ordered by
// ascending trust rank (the reconciliation consultation order).
func Build(cfg config.SourcesConfig, client *httpclient.Client, logger *slog.Logger, metrics *infrastructure.Metrics) []Connector {
	var connectors []Connector

	if cfg.Brapi.Enabled {
		connectors = append(connectors, NewBrapi(
			cfg.Brapi.BaseURL, cfg.Brapi.Token, cfg.Brapi.TrustRank, client, logger, metrics))
	}
	if cfg.StatusInvest.Enabled {
		connectors = append(connectors, NewStatusInvest(
			cfg.StatusInvest.BaseURL, cfg.StatusInvest.TrustRank, client, logger, metrics))
	}
	if cfg.FundsExplorer.Enabled {
		connectors = append(connectors, NewFundsExplorer(
			cfg.FundsExplorer.BaseURL, cfg.FundsExplorer.TrustRank, logger, metrics))
	}

	sort.Slice(connectors, func(i, j int) bool {
		return connectors[i].TrustRank() < connectors[j].TrustRank()
	})
	return connectors
}
