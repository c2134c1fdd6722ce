package apiconfig_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/proxy-dashboard/internal/apiconfig"
)

var _ = Describe("EnvInfo", func() {
	var loadedAt time.Time

	BeforeEach(func() {
		loadedAt = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	})

	DescribeTable("environment flags",
		func(mode string, dev bool, prod bool) {
			info := apiconfig.BuildEnvInfo(mode, "https://dash.example.com", loadedAt)
			Expect(info.Mode).To(Equal(mode))
			Expect(info.Dev).To(Equal(dev))
			Expect(info.Prod).To(Equal(prod))
		},
		Entry("development", "development", true, false),
		Entry("production", "production", false, true),
		Entry("staging is neither", "staging", false, false),
	)

	It("records the origin and load time", func() {
		info := apiconfig.BuildEnvInfo("production", "https://dash.example.com", loadedAt)
		Expect(info.Origin).To(Equal("https://dash.example.com"))
		Expect(info.BuildTime).To(Equal(loadedAt))
	})

	It("normalises the load time to UTC", func() {
		local := loadedAt.In(time.FixedZone("UTC+8", 8*60*60))
		info := apiconfig.BuildEnvInfo("production", "https://dash.example.com", local)
		Expect(info.BuildTime.Location()).To(Equal(time.UTC))
		Expect(info.BuildTime.Equal(loadedAt)).To(BeTrue())
	})
})
