// This file is part of GopherPS2.
//
// GopherPS2 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherPS2 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherPS2.  If not, see <https://www.gnu.org/licenses/>.

// Package paths prepares paths to the resources used by gopherps2, such as
// the preferences file and the output of the DUMP mode.
//
// The ResourcePath() function prepends the supplied resource with the
// configuration directory. For development builds the configuration
// directory is in the current working directory:
//
//	.gopherps2
//
// For builds with the "release" build tag, the directory is rooted in the
// user's configuration directory. On a modern Linux system the path would be
// something like:
//
//	/home/user/.config/gopherps2
//
// Any missing directories are created. The resource file itself is never
// touched.
package paths
