package cli

import (
	"fmt"

	authz "github.com/TwigBush/authz-go"
	"github.com/TwigBush/authz-go/enforcer"
)

func buildEngine(cfg *Config) (authz.Engine, error) {
	switch cfg.Engine {
	case "fga":
		return enforcer.NewOpenFGA(enforcer.OpenFGAConfig{
			APIURL:  cfg.FGAAPIURL,
			StoreID: cfg.FGAStoreID,
			ModelID: cfg.FGAModelID,
		})
	case "", "casbin":
		if cfg.ModelPath == "" {
			return enforcer.NewCasbinInMemory()
		}
		return enforcer.NewCasbin(cfg.ModelPath, cfg.PolicyPath)
	default:
		return nil, fmt.Errorf("unknown engine %q", cfg.Engine)
	}
}
