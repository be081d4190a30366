package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/bloodmagesoftware/gardenplan/garden"
	"github.com/bloodmagesoftware/gardenplan/project"
)

// openPlan loads the project configuration and the named plan. A missing
// plan is created from the configured area when create is set.
func openPlan(name string, create bool) (*project.Config, *garden.Plan, string, error) {
	_, config, err := project.Load()
	if err != nil {
		return nil, nil, "", err
	}

	name = strings.TrimSuffix(name, ".yaml")
	path := config.PlanPath(name)
	plan := config.NewPlan(name)

	err = plan.Load(path)
	switch {
	case err == nil:
		log.Printf("loaded plan %s", path)
	case errors.Is(err, os.ErrNotExist) && create:
		log.Printf("creating plan %s", path)
	case errors.Is(err, os.ErrNotExist):
		return nil, nil, "", fmt.Errorf("plan %q does not exist in %s", name, config.PlansDir)
	default:
		return nil, nil, "", err
	}
	return config, plan, path, nil
}
