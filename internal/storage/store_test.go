package storage_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/colsim/internal/runner"
	"github.com/san-kum/colsim/internal/scene"
	"github.com/san-kum/colsim/internal/storage"
)

var _ = Describe("Store", func() {
	var (
		dir    string
		st     *storage.Store
		sc     *scene.Scene
		result *runner.Result
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		st = storage.New(dir)
		Expect(st.Init()).To(Succeed())

		sc = scene.DefaultScene()
		r, err := runner.New(sc)
		Expect(err).NotTo(HaveOccurred())
		result, err = r.Run(context.Background(), 10)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("SaveRun", func() {
		It("creates metadata and a state series", func() {
			runID, err := st.SaveRun(sc, result)
			Expect(err).NotTo(HaveOccurred())
			Expect(runID).To(HavePrefix("impact_"))

			Expect(filepath.Join(dir, runID, "metadata.json")).To(BeARegularFile())
			Expect(filepath.Join(dir, runID, "states.csv")).To(BeARegularFile())
		})

		It("round-trips metadata", func() {
			runID, err := st.SaveRun(sc, result)
			Expect(err).NotTo(HaveOccurred())

			meta, err := st.LoadMeta(runID)
			Expect(err).NotTo(HaveOccurred())
			Expect(meta.ID).To(Equal(runID))
			Expect(meta.Scene).To(Equal("impact"))
			Expect(meta.Frames).To(Equal(11))
			Expect(meta.Radii).To(Equal([]float64{1, 1}))
			Expect(meta.Masses).To(Equal([]float64{1, 2}))
			Expect(meta.Metrics).To(HaveKey("kinetic_energy"))
			Expect(meta.Metrics["kinetic_energy"]).To(BeNumerically("~", 25, 1e-6))
		})

		It("round-trips the state series", func() {
			runID, err := st.SaveRun(sc, result)
			Expect(err).NotTo(HaveOccurred())

			data, err := st.LoadStates(runID)
			Expect(err).NotTo(HaveOccurred())
			Expect(data.Times).To(HaveLen(11))
			Expect(data.Steps).To(HaveLen(11))
			Expect(data.BodyCount()).To(Equal(2))

			// Frame zero is the initial state, truncated to six decimals.
			Expect(data.States[0][0]).To(BeNumerically("~", -2, 1e-6))
			Expect(data.States[0][1]).To(BeNumerically("~", 1, 1e-6))
			Expect(data.States[0][6]).To(BeNumerically("~", -5, 1e-6))
		})
	})

	Describe("BodySeries", func() {
		It("extracts one body's columns", func() {
			runID, err := st.SaveRun(sc, result)
			Expect(err).NotTo(HaveOccurred())
			data, err := st.LoadStates(runID)
			Expect(err).NotTo(HaveOccurred())

			xs, _, vxs, _, err := data.BodySeries(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(xs).To(HaveLen(11))
			Expect(xs[0]).To(BeNumerically("~", 2, 1e-6))
			Expect(vxs[0]).To(BeNumerically("~", -5, 1e-6))
			// The striker closes on the resting body over the first frames.
			Expect(xs[10]).To(BeNumerically("<", xs[0]))
		})

		It("rejects an out-of-range body", func() {
			runID, err := st.SaveRun(sc, result)
			Expect(err).NotTo(HaveOccurred())
			data, err := st.LoadStates(runID)
			Expect(err).NotTo(HaveOccurred())

			_, _, _, _, err = data.BodySeries(5)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("List", func() {
		It("returns saved runs and skips foreign entries", func() {
			_, err := st.SaveRun(sc, result)
			Expect(err).NotTo(HaveOccurred())

			Expect(os.MkdirAll(filepath.Join(dir, "not-a-run"), 0755)).To(Succeed())
			Expect(os.WriteFile(filepath.Join(dir, "stray.txt"), []byte("x"), 0644)).To(Succeed())

			runs, err := st.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(runs).To(HaveLen(1))
			Expect(runs[0].Scene).To(Equal("impact"))
		})

		It("returns empty for a missing root", func() {
			other := storage.New(filepath.Join(dir, "missing"))
			runs, err := other.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(runs).To(BeEmpty())
		})
	})

	Describe("ExportJSON", func() {
		It("writes the combined run document", func() {
			runID, err := st.SaveRun(sc, result)
			Expect(err).NotTo(HaveOccurred())
			meta, err := st.LoadMeta(runID)
			Expect(err).NotTo(HaveOccurred())
			data, err := st.LoadStates(runID)
			Expect(err).NotTo(HaveOccurred())

			path := filepath.Join(dir, "out.json")
			Expect(storage.ExportJSON(path, meta, data)).To(Succeed())

			raw, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			var exported storage.ExportData
			Expect(json.Unmarshal(raw, &exported)).To(Succeed())
			Expect(exported.ID).To(Equal(runID))
			Expect(exported.Scene).To(Equal("impact"))
			Expect(exported.States).To(HaveLen(11))
			Expect(exported.Steps).To(HaveLen(11))
		})
	})
})
