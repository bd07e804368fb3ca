package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteProject writes files, keyed by slash-separated relative path, into a
// fresh temp directory and returns its path.
func WriteProject(t testing.TB, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	return root
}

// SampleProject is a small application with one of each interesting case:
// an external template, a missing template, an import cycle and a file
// that does not parse.
var SampleProject = map[string]string{
	"src/app/app.module.ts": `import { NgModule } from '@angular/core';
import { AppComponent } from './app.component';

@NgModule({ declarations: [AppComponent], bootstrap: [AppComponent] })
export class AppModule {}
`,
	"src/app/app.component.ts": `import { Component } from '@angular/core';
import { UserService } from './user.service';

@Component({ selector: 'app-root', templateUrl: './app.component.html' })
export class AppComponent {
  constructor(private users: UserService) {}
  ngOnInit() {}
}
`,
	"src/app/app.component.html": `<div (click)="go()">{{ title }}</div>`,
	"src/app/user.service.ts": `import { Injectable } from '@angular/core';
import { HttpClient } from '@angular/common/http';

@Injectable({ providedIn: 'root' })
export class UserService {
  constructor(private http: HttpClient) {}
  getUser(id: string) { return this.http.get('/u/' + id); }
}
`,
	"src/app/missing.component.ts": `import { Component } from '@angular/core';

@Component({ selector: 'app-missing', templateUrl: './nope.html' })
export class MissingComponent {}
`,
	"src/lib/a.ts": `import { b } from './b';
export const a = 1;
`,
	"src/lib/b.ts": `import { a } from './a';
export const b = 2;
`,
	"src/broken.ts": `export const = ;`,
}
