// cmd.go --  This file is part of goHF project.
// Mirzaeva Irina, 2023
//
//	goHF is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
//	You should have received a copy of the GNU General Public License
//	along with this program.  If not, see http://www.gnu.org/licenses/
//
// ------------------------------------------------

package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"example.com/gohf/input"
	"example.com/gohf/report"
	"example.com/gohf/scf"
)

func newRootCmd() *cobra.Command {
	var level string
	root := &cobra.Command{
		Use:           "goHF",
		Short:         "Restricted Hartree-Fock SCF on precomputed integrals",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := zerolog.ParseLevel(level)
			if err != nil {
				return err
			}
			zerolog.SetGlobalLevel(lvl)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&level, "log-level", "info", "log level (debug, info, warn, error)")
	root.AddCommand(runCmd(), expandCmd(), versionCmd())
	return root
}

// overrides are command line values that replace run file fields.
type overrides struct {
	out            string
	plot           string
	densityOut     string
	orthogonalizer string
	guess          string
	iterations     int
	converge       float64
	workers        int
	strict         bool
}

func (o *overrides) register(fs *pflag.FlagSet) {
	fs.StringVarP(&o.out, "out", "o", "", "report file (default: run file with .out extension)")
	fs.StringVar(&o.plot, "plot", "", "write a convergence plot to this file")
	fs.StringVar(&o.densityOut, "density-out", "", "write the final density matrix to this file")
	fs.StringVar(&o.orthogonalizer, "orthogonalizer", "", "orthogonalization: "+strings.Join(scf.OrthogonalizerNames(), ", "))
	fs.StringVar(&o.guess, "guess", "", "starting density when none is given: zero or core")
	fs.IntVar(&o.iterations, "iterations", 0, "maximum number of SCF iterations")
	fs.Float64Var(&o.converge, "converge", 0, "convergence threshold on the squared density change")
	fs.IntVar(&o.workers, "workers", 0, "goroutines used to build the Fock matrix")
	fs.BoolVar(&o.strict, "strict", false, "exit with an error if the SCF does not converge")
}

func (o *overrides) apply(fs *pflag.FlagSet, rf *input.RunFile) {
	if fs.Changed("plot") {
		rf.Plot = o.plot
	}
	if fs.Changed("density-out") {
		rf.DensityOut = o.densityOut
	}
	if fs.Changed("orthogonalizer") {
		rf.Orthogonalizer = o.orthogonalizer
	}
	if fs.Changed("guess") {
		rf.Guess = o.guess
	}
	if fs.Changed("iterations") {
		rf.Iterations = o.iterations
	}
	if fs.Changed("converge") {
		rf.Converge = o.converge
	}
	if fs.Changed("workers") {
		rf.Workers = o.workers
	}
}

// outName replaces the extension of the run file with .out.
func outName(runFile string) string {
	return strings.TrimSuffix(runFile, filepath.Ext(runFile)) + ".out"
}

func runCmd() *cobra.Command {
	var o overrides
	cmd := &cobra.Command{
		Use:   "run <run file>",
		Short: "Run an SCF calculation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], &o)
		},
	}
	o.register(cmd.Flags())
	return cmd
}

func run(cmd *cobra.Command, fname string, o *overrides) error {
	tstart := time.Now()
	rf, err := input.ReadRunFile(fname)
	if err != nil {
		return err
	}
	o.apply(cmd.Flags(), rf)

	orth, err := scf.OrthogonalizerByName(rf.Orthogonalizer)
	if err != nil {
		return err
	}
	guess, err := scf.GuessByName(rf.Guess)
	if err != nil {
		return err
	}

	outFname := o.out
	if outFname == "" {
		outFname = outName(fname)
	}
	w, err := report.Create(outFname)
	if err != nil {
		return err
	}
	defer w.Close()
	log.Info().Str("report", outFname).Msg("starting goHF")

	w.Banner(version)
	if lines, err := input.ReadFileLines(fname); err == nil {
		w.Input(fname, lines)
	}

	rec, err := rf.Load()
	if err != nil {
		log.Error().Err(err).Msg("cannot load input")
		return err
	}
	log.Info().Int("basis", rec.Dim()).Int("electrons", rec.Electrons).
		Bool("density_init", rec.DensityInit != nil).
		Dur("elapsed", time.Since(tstart)).Msg("integrals loaded")
	tstart = time.Now()

	var history report.History
	s := rec.Settings()
	s.Orthogonalizer = orth
	s.Guess = guess
	s.Workers = rf.Workers
	s.Observer = scf.MultiObserver{w, &history, scf.ObserverFunc(func(it scf.Iteration) {
		log.Debug().Int("iteration", it.Number).Float64("energy", it.Energy).
			Float64("dE", it.DeltaEnergy).Float64("dD", it.DensityChange).Msg("scf")
	})}

	res, err := scf.Run(s)
	w.Result(res, err)
	switch {
	case errors.Is(err, scf.ErrNotConverged):
		log.Warn().Err(err).Msg("returning unconverged energy")
		if o.strict {
			return err
		}
	case err != nil:
		log.Error().Err(err).Msg("scf failed")
		return err
	}
	log.Info().Stringer("state", res.State).Int("iterations", res.Iterations).
		Float64("energy", res.Total).Dur("elapsed", time.Since(tstart)).Msg("scf done")

	if rf.DensityOut != "" {
		p := rf.OutputPath(rf.DensityOut)
		if err := input.WriteMatrix(p, res.Density); err != nil {
			return err
		}
		log.Info().Str("file", p).Msg("density written")
	}
	if rf.Plot != "" {
		p := rf.OutputPath(rf.Plot)
		if err := history.Plot(p); err != nil {
			return err
		}
		log.Info().Str("file", p).Msg("convergence plot written")
	}

	fmt.Fprintln(cmd.OutOrStdout(), report.Summary(res))
	return nil
}

func expandCmd() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "expand-eri <list file> <directory>",
		Short: "Expand a list of symmetry-unique integrals into a dense directory tree",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eri, err := input.ReadERIList(args[0], n)
			if err != nil {
				return err
			}
			if err := input.WriteDenseERI(args[1], eri); err != nil {
				return err
			}
			log.Info().Str("dir", args[1]).Int("basis", n).Msg("integrals expanded")
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "basis", "n", 0, "basis dimension")
	cmd.MarkFlagRequired("basis")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "goHF", version)
		},
	}
}
