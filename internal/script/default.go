package script

// Default returns the built-in reel: scaffold a NestJS API, write two auth
// files in vim, run the e2e tests, commit and deploy.
func Default() *Script {
	lines := make([]Line, len(defaultLines))
	copy(lines, defaultLines)
	return &Script{Name: "nest-auth", Lines: lines}
}

var defaultLines = []Line{
	{1, "npm init -y", KindCommand, 0},
	{2, "Wrote to /home/dev/project/package.json:", KindInfo, 300},
	{3, "{", KindLog, 100},
	{4, `  "name": "api-service",`, KindLog, 50},
	{5, `  "version": "1.0.0",`, KindLog, 50},
	{6, `  "main": "index.js",`, KindLog, 50},
	{7, `  "license": "MIT"`, KindLog, 50},
	{8, "}", KindLog, 50},

	{9, "npm i -g @nestjs/cli", KindCommand, 500},
	{10, "⠋ Installing @nestjs/cli...", KindSystem, 200},
	{11, "✔ @nestjs/cli@10.2.1 installed successfully", KindSuccess, 1500},

	{12, "nest new api-service --package-manager npm", KindCommand, 300},
	{13, "⚡ We will scaffold your app in a few seconds..", KindInfo, 400},
	{14, "CREATE api-service/.eslintrc.js (663 bytes)", KindSystem, 100},
	{15, "CREATE api-service/.prettierrc (51 bytes)", KindSystem, 50},
	{16, "CREATE api-service/nest-cli.json (171 bytes)", KindSystem, 50},
	{17, "CREATE api-service/package.json (1980 bytes)", KindSystem, 50},
	{18, "CREATE api-service/tsconfig.json (546 bytes)", KindSystem, 50},
	{19, "CREATE api-service/src/main.ts (208 bytes)", KindSystem, 50},
	{20, "CREATE api-service/src/app.module.ts (249 bytes)", KindSystem, 50},
	{21, "CREATE api-service/src/app.controller.ts (274 bytes)", KindSystem, 50},
	{22, "CREATE api-service/src/app.service.ts (142 bytes)", KindSystem, 50},
	{23, "✔ Installation in progress... ☕", KindSuccess, 300},
	{24, "🚀 Successfully created project api-service", KindSuccess, 2000},

	{44, "nest g module auth", KindCommand, 1000},
	{45, "CREATE src/auth/auth.module.ts (82 bytes)", KindSystem, 200},
	{46, "UPDATE src/app.module.ts (312 bytes)", KindSystem, 100},

	{47, "nest g controller auth --no-spec", KindCommand, 400},
	{48, "CREATE src/auth/auth.controller.ts (97 bytes)", KindSystem, 200},
	{49, "UPDATE src/auth/auth.module.ts (170 bytes)", KindSystem, 100},

	{50, "nest g service auth --no-spec", KindCommand, 400},
	{51, "CREATE src/auth/auth.service.ts (88 bytes)", KindSystem, 200},
	{52, "UPDATE src/auth/auth.module.ts (246 bytes)", KindSystem, 100},

	{53, "npm install @nestjs/jwt @nestjs/passport passport passport-jwt bcrypt", KindCommand, 500},
	{54, "⠋ Installing dependencies...", KindSystem, 300},
	{55, "added 23 packages, and audited 847 packages in 4s", KindInfo, 1500},
	{56, "✔ Dependencies installed successfully", KindSuccess, 100},

	{57, "vim src/auth/auth.service.ts", KindCommand, 600},
	{59, "import { Injectable } from '@nestjs/common';", KindVim, 100},
	{60, "import { JwtService } from '@nestjs/jwt';", KindVim, 80},
	{61, "import * as bcrypt from 'bcrypt';", KindVim, 80},
	{62, "", KindVim, 50},
	{63, "@Injectable()", KindVim, 80},
	{64, "export class AuthService {", KindVim, 80},
	{65, "  constructor(private jwtService: JwtService) {}", KindVim, 100},
	{66, "", KindVim, 50},
	{67, "  async validateUser(username: string, pass: string) {", KindVim, 100},
	{68, "    // Mock user validation logic", KindVim, 80},
	{681, ":vim-cmd:o", KindVim, 200},
	{69, "    const user = { id: 1, username, password: await bcrypt.hash(pass, 10) };", KindVim, 120},
	{70, "    return user;", KindVim, 80},
	{71, "  }", KindVim, 60},
	{72, "", KindVim, 50},
	{73, "  async login(user: any) {", KindVim, 100},
	{74, "    const payload = { username: user.username, sub: user.id };", KindVim, 100},
	{75, "    return {", KindVim, 80},
	{76, "      access_token: this.jwtService.sign(payload),", KindVim, 100},
	{77, "    };", KindVim, 60},
	{78, "  }", KindVim, 60},
	{79, "}", KindVim, 60},
	{80, ":wq", KindVim, 300},
	{81, "'src/auth/auth.service.ts' written", KindSystem, 100},

	{82, "vim src/auth/jwt.strategy.ts", KindCommand, 400},
	{83, ":set number", KindVim, 300},
	{84, "import { ExtractJwt, Strategy } from 'passport-jwt';", KindVim, 100},
	{85, "import { PassportStrategy } from '@nestjs/passport';", KindVim, 80},
	{86, "import { Injectable } from '@nestjs/common';", KindVim, 80},
	{87, "", KindVim, 50},
	{88, "@Injectable()", KindVim, 80},
	{89, "export class JwtStrategy extends PassportStrategy(Strategy) {", KindVim, 100},
	{90, "  constructor() {", KindVim, 80},
	{91, "    super({", KindVim, 60},
	{92, "      jwtFromRequest: ExtractJwt.fromAuthHeaderAsBearerToken(),", KindVim, 100},
	{93, "      ignoreExpiration: false,", KindVim, 80},
	{94, "      secretOrKey: 'SECRET_KEY_HERE',", KindVim, 80},
	{95, "    });", KindVim, 60},
	{96, "  }", KindVim, 60},
	{97, "", KindVim, 50},
	{98, "  async validate(payload: any) {", KindVim, 100},
	{99, "    return { userId: payload.sub, username: payload.username };", KindVim, 100},
	{100, "  }", KindVim, 60},
	{101, "}", KindVim, 60},
	{102, ":wq", KindVim, 300},
	{103, "'src/auth/jwt.strategy.ts' written", KindSystem, 100},

	{104, "npm run test:e2e -- auth", KindCommand, 500},
	{105, "> api-service@1.0.0 test:e2e", KindInfo, 200},
	{106, "> jest --config ./test/jest-e2e.json auth", KindInfo, 100},
	{107, "PASS test/auth.e2e-spec.ts", KindSuccess, 800},
	{108, "  Auth API", KindLog, 100},
	{109, "    ✓ /auth/login (POST) - should return JWT token (125ms)", KindSuccess, 200},
	{110, "    ✓ /auth/profile (GET) - should return user profile (45ms)", KindSuccess, 150},
	{111, "    ✓ /auth/profile (GET) - should return 401 without token (23ms)", KindSuccess, 100},
	{112, "", KindLog, 50},
	{113, "Test Suites: 1 passed, 1 total", KindSuccess, 100},
	{114, "Tests:       3 passed, 3 total", KindSuccess, 50},
	{115, "Time:        2.341s", KindInfo, 50},

	{116, `git add -A && git commit -m "feat: Add JWT authentication"`, KindCommand, 500},
	{117, "[main 8a3f2d1] feat: Add JWT authentication", KindSystem, 300},
	{118, " 5 files changed, 187 insertions(+)", KindInfo, 100},

	{119, "npm run deploy:prod", KindCommand, 400},
	{120, "> Building for production...", KindInfo, 200},
	{121, "Hash: 3f8e2a1b4c5d6e7f8g9h", KindSystem, 500},
	{122, "Version: webpack 5.90.1", KindSystem, 50},
	{123, "Time: 8234ms", KindSystem, 800},
	{124, "Built at: 12/21/2024 11:15:32 AM", KindSystem, 100},
	{125, "Deploying to production environment...", KindInfo, 300},
	{126, "✔ JWT authentication feature deployed successfully!", KindSuccess, 1200},
	{127, "🚀 API v1.1.0 is now live at https://api.production.com", KindSuccess, 200},
}
