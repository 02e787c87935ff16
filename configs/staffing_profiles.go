package config

import (
	"fmt"
	"os"
	"sort"

	"wfm-api/pkg/models"

	"gopkg.in/yaml.v3"
)

// StaffingProfile は配置設定の名前付き既定値を定義
type StaffingProfile struct {
	Description       string  `yaml:"description" json:"description"`
	MaxCallsPerAgent  int     `yaml:"max_calls_per_agent" json:"max_calls_per_agent"`
	PeakBufferRatio   float64 `yaml:"peak_buffer_ratio" json:"peak_buffer_ratio"`
	UtilizationTarget float64 `yaml:"utilization_target" json:"utilization_target"`
	OptimalBand       struct {
		Low  float64 `yaml:"low" json:"low"`
		High float64 `yaml:"high" json:"high"`
	} `yaml:"optimal_band" json:"optimal_band"`
	Validation struct {
		LowerBound float64 `yaml:"lower_bound" json:"lower_bound"`
		UpperBound float64 `yaml:"upper_bound" json:"upper_bound"`
	} `yaml:"validation" json:"validation"`
}

// AllocationConfig プロファイルの値で配置設定を組み立てる
func (p StaffingProfile) AllocationConfig(numAgents int) models.AllocationConfig {
	return models.AllocationConfig{
		NumAgents:         numAgents,
		MaxCallsPerAgent:  p.MaxCallsPerAgent,
		PeakBufferRatio:   p.PeakBufferRatio,
		UtilizationTarget: p.UtilizationTarget,
		OptimalLow:        p.OptimalBand.Low,
		OptimalHigh:       p.OptimalBand.High,
	}
}

// StaffingProfiles は staffing_profiles.yaml の構造を定義
type StaffingProfiles struct {
	Default  string                     `yaml:"default" json:"default"`
	Profiles map[string]StaffingProfile `yaml:"profiles" json:"profiles"`
}

// LoadStaffingProfiles はYAMLファイルから配置プロファイルを読み込む
func LoadStaffingProfiles(path string) (*StaffingProfiles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("配置プロファイルの読み込みに失敗: %w", err)
	}
	return ParseStaffingProfiles(data)
}

// ParseStaffingProfiles はYAMLの内容を解析し、未指定の項目を既定値で補う
func ParseStaffingProfiles(data []byte) (*StaffingProfiles, error) {
	var profiles StaffingProfiles
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("YAMLのパースに失敗: %w", err)
	}
	if len(profiles.Profiles) == 0 {
		return nil, fmt.Errorf("プロファイルが定義されていません")
	}
	for name, p := range profiles.Profiles {
		profiles.Profiles[name] = withDefaults(p)
	}
	if profiles.Default == "" {
		profiles.Default = "standard"
	}
	if _, ok := profiles.Profiles[profiles.Default]; !ok {
		return nil, fmt.Errorf("既定プロファイル %q が存在しません", profiles.Default)
	}
	return &profiles, nil
}

// DefaultStaffingProfiles は設定ファイルがない場合の組み込みプロファイル
func DefaultStaffingProfiles() *StaffingProfiles {
	standard := withDefaults(StaffingProfile{
		Description:     "通常期: ピーク上乗せ10%",
		PeakBufferRatio: 0.1,
	})
	peak := withDefaults(StaffingProfile{
		Description:     "繁忙期: ピーク上乗せ20%",
		PeakBufferRatio: 0.2,
	})
	return &StaffingProfiles{
		Default: "standard",
		Profiles: map[string]StaffingProfile{
			"standard": standard,
			"peak":     peak,
		},
	}
}

// Get は名前でプロファイルを取得する。空文字の場合は既定プロファイルを返す。
func (sp *StaffingProfiles) Get(name string) (StaffingProfile, bool) {
	if name == "" {
		name = sp.Default
	}
	p, ok := sp.Profiles[name]
	return p, ok
}

// Names はプロファイル名をソートして返す
func (sp *StaffingProfiles) Names() []string {
	names := make([]string, 0, len(sp.Profiles))
	for name := range sp.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func withDefaults(p StaffingProfile) StaffingProfile {
	if p.MaxCallsPerAgent == 0 {
		p.MaxCallsPerAgent = 40
	}
	if p.UtilizationTarget == 0 {
		p.UtilizationTarget = 0.7
	}
	if p.OptimalBand.Low == 0 && p.OptimalBand.High == 0 {
		p.OptimalBand.Low, p.OptimalBand.High = 50, 90
	}
	if p.Validation.LowerBound == 0 && p.Validation.UpperBound == 0 {
		p.Validation.LowerBound, p.Validation.UpperBound = 50, 90
	}
	return p
}
