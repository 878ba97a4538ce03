package di

import (
	"os"

	authz "github.com/TwigBush/authz-go"
	"github.com/TwigBush/authz-go/enforcer"
)

// ProvideEngine picks the policy engine from the environment. Casbin with
// an in-process model is the default; file-backed casbin and OpenFGA are
// opt-in.
func ProvideEngine() authz.Engine {
	switch os.Getenv("AUTHZ_ENGINE") {
	case "fga":
		cfg := enforcer.OpenFGAConfig{
			APIURL:   getenv("FGA_API_URL", "http://localhost:8080"),
			StoreID:  os.Getenv("FGA_STORE_ID"),
			APIToken: os.Getenv("FGA_API_TOKEN"),
			ModelID:  os.Getenv("FGA_MODEL_ID"),
		}
		e, err := enforcer.NewOpenFGA(cfg)
		if err != nil {
			panic(err)
		}
		return e
	case "mock":
		return &enforcer.Mock{}
	case "casbin-file":
		e, err := enforcer.NewCasbin(os.Getenv("AUTHZ_MODEL"), os.Getenv("AUTHZ_POLICY"))
		if err != nil {
			panic(err)
		}
		return e
	default:
		e, err := enforcer.NewCasbinInMemory()
		if err != nil {
			panic(err)
		}
		return e
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
