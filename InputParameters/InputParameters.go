package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type InputParameters struct {
	Title      string             `yaml:"Title"`
	Problem    string             `yaml:"Problem"` // advection1d, acoustics1d, acoustics2d
	Scheme     string             `yaml:"Scheme"`  // classic or sharpclaw
	Order      int                `yaml:"Order"`
	CFL        float64            `yaml:"CFL"`
	CFLMax     float64            `yaml:"CFLMax"`
	FinalTime  float64            `yaml:"FinalTime"`
	NCells     int                `yaml:"NCells"`
	Limiter    string             `yaml:"Limiter"`
	Partitions int                `yaml:"Partitions"`
	Coeffs     map[string]float64 `yaml:"Coeffs"` // Problem coefficients (rho, bulk, u, ...)
}

func (ip *InputParameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, ip); err != nil {
		return err
	}
	return ip.validate()
}

func (ip *InputParameters) validate() error {
	if ip.NCells <= 0 {
		return fmt.Errorf("NCells must be positive, got %d", ip.NCells)
	}
	if ip.CFL <= 0 {
		return fmt.Errorf("CFL must be positive, got %g", ip.CFL)
	}
	switch ip.Scheme {
	case "", "classic", "sharpclaw":
	default:
		return fmt.Errorf("unknown scheme %q", ip.Scheme)
	}
	return nil
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t= Problem\n", ip.Problem)
	fmt.Printf("[%s]\t\t= Scheme\n", ip.Scheme)
	fmt.Printf("%8.5f\t\t= CFL\n", ip.CFL)
	fmt.Printf("%8.5f\t\t= FinalTime\n", ip.FinalTime)
	fmt.Printf("[%d]\t\t\t= NCells\n", ip.NCells)
	fmt.Printf("[%s]\t\t= Limiter\n", ip.Limiter)
	keys := make([]string, 0, len(ip.Coeffs))
	for k := range ip.Coeffs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("Coeffs[%s] = %v\n", key, ip.Coeffs[key])
	}
}
