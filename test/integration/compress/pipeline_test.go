// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

//go:build integration

package compress_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/holomush/evcompress/internal/compressor"
	"github.com/holomush/evcompress/internal/notify/notifytest"
	"github.com/holomush/evcompress/internal/pipeline"
	"github.com/holomush/evcompress/internal/registry"
	"github.com/holomush/evcompress/internal/resolve"
)

var _ = Describe("Compression pipeline", func() {
	var (
		ctx      context.Context
		root     string
		paths    []string
		reg      *registry.Static
		recorder *notifytest.Recorder
	)

	BeforeEach(func() {
		ctx = context.Background()
		root = GinkgoT().TempDir()
		paths = writeTree(root)

		manifest := filepath.Join(root, "listeners.yaml")
		Expect(os.WriteFile(manifest, []byte(listenersManifest), 0o600)).To(Succeed())
		var err error
		reg, err = registry.Load(manifest)
		Expect(err).NotTo(HaveOccurred())

		recorder = &notifytest.Recorder{}
	})

	run := func(opts compressor.Options, outDir string) []pipeline.Output {
		session, err := compressor.NewSession(opts)
		Expect(err).NotTo(HaveOccurred())
		p := pipeline.New(pipeline.Options{
			Session:  session,
			Registry: reg,
			Sink:     recorder,
			Workers:  4,
		})
		outputs, err := p.Run(ctx, paths, outDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(outputs).To(HaveLen(len(paths)))
		return outputs
	}

	Describe("Transforming a source tree", func() {
		It("rewrites every fire in the controller", func() {
			outputs := run(compressor.Options{}, "")

			docs := outputs[2].Result.Output
			Expect(docs).To(ContainSubstring("    m(\"store\")->persist($doc, $user);\naudit_write($doc, $user);\n"))
			Expect(docs).NotTo(ContainSubstring("Event::fire"))
			Expect(outputs[2].Result.Substitutions).To(Equal(4))
		})

		It("removes fires whose handlers cannot be called directly", func() {
			outputs := run(compressor.Options{}, "")

			docs := outputs[2].Result.Output
			Expect(docs).To(ContainSubstring("function load($id) {\n    \n}"))
			Expect(docs).To(ContainSubstring("function idle() {\n    \n}"))
		})

		It("reports variable handlers as rejected", func() {
			run(compressor.Options{}, "")

			Expect(recorder.Rejections()).To(ContainElement(notifytest.Rejection{
				EventID: "doc.delete",
				Handler: "$handler",
				Reason:  resolve.ReasonVariable,
			}))
		})

		It("leaves module files untouched", func() {
			outputs := run(compressor.Options{}, "")

			Expect(outputs[0].Result.Output).To(Equal(sourceTree["modules/store.php"]))
			Expect(outputs[1].Result.Output).To(Equal(sourceTree["modules/audit.php"]))
		})

		It("honors exclude patterns", func() {
			outputs := run(compressor.Options{Exclude: []string{"app.*"}}, "")

			Expect(outputs[2].Result.Output).To(ContainSubstring("Event::fire('app.idle');"))
			Expect(outputs[2].Result.Substitutions).To(Equal(3))
		})

		It("writes outputs under the output directory", func() {
			outDir := GinkgoT().TempDir()
			run(compressor.Options{}, outDir)

			data, err := os.ReadFile(filepath.Join(outDir, "docs.php"))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(ContainSubstring("audit_write($doc, $user);"))
		})
	})

	Describe("Running the CLI", func() {
		It("compresses files and validates the manifest", func() {
			outDir := GinkgoT().TempDir()
			cmd := exec.CommandContext(ctx, "go", append([]string{"run", ".", "compress",
				"--registry", filepath.Join(root, "listeners.yaml"),
				"--out-dir", outDir,
				"--log-format", "text"}, paths...)...)
			cmd.Dir = "../../../cmd/evcompress"
			cmd.Env = append(cmd.Environ(), "XDG_CONFIG_HOME="+GinkgoT().TempDir())

			output, err := cmd.CombinedOutput()
			Expect(err).NotTo(HaveOccurred(), "compress command failed: %s", string(output))
			Expect(string(output)).To(ContainSubstring("compression complete"))

			data, err := os.ReadFile(filepath.Join(outDir, "docs.php"))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(ContainSubstring("m(\"store\")->persist($doc, $user);"))

			validate := exec.CommandContext(ctx, "go", "run", ".", "validate-registry", filepath.Join(root, "listeners.yaml"))
			validate.Dir = "../../../cmd/evcompress"
			output, err = validate.CombinedOutput()
			Expect(err).NotTo(HaveOccurred(), "validate-registry failed: %s", string(output))
			Expect(string(output)).To(ContainSubstring("ok (2 events)"))
		})
	})
})
