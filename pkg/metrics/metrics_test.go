package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestRecording(t *testing.T) {
	Convey("Given the package-level recorders", t, func() {
		Convey("Then poll loop metrics should not panic", func() {
			So(func() {
				RecordTick("ok")
				RecordTick("fetch_error")
				RecordFetchLatency(42.0)
				UpdatePollInterval(30)
				UpdateLiveEvents(3)
			}, ShouldNotPanic)
		})

		Convey("Then subscription metrics should not panic", func() {
			So(func() {
				RecordSubscription("live")
				RecordSubscription("pending")
				RecordPromotion(2)
				UpdateSubscriberCounts(5, 1)
				RecordRegistryWrite(1.5, true)
				RecordRegistryWrite(2.5, false)
			}, ShouldNotPanic)
		})

		Convey("Then notification metrics should not panic", func() {
			So(func() {
				RecordNotificationSent()
				RecordNotificationFailure()
				UpdateDispatchQueue(10, 1000)
				RecordDispatchEnqueueError()
			}, ShouldNotPanic)
		})

		Convey("Then HTTP and system metrics should not panic", func() {
			So(func() {
				RecordHTTPRequest("/live", "GET", "200")
				RecordHTTPRequestDuration("/live", "GET", "200", 3.2)
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(12)
			}, ShouldNotPanic)
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the custom registry", t, func() {
		So(GetRegistry(), ShouldNotBeNil)

		Convey("Then gathered metrics include the service namespace", func() {
			RecordTick("ok")
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			found := false
			for _, fam := range families {
				if fam.GetName() == "scorewatch_monitor_ticks_total" {
					found = true
				}
			}
			So(found, ShouldBeTrue)
		})
	})
}
