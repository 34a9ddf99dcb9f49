// compileinfoprint is imported for the side effect of printing the compileinfo
// to os.Stderr
package compileinfoprint

import "github.com/carbocation/mroutcome/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
